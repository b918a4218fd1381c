package models

// Prediction is one ranked finding returned to the client.
type Prediction struct {
	Prediction  string  `json:"prediction"`
	Probability float32 `json:"probability"`
	Caption     string  `json:"caption"`
	Code        string  `json:"code"`
}

// PredictResponse is the body of a successful /api/predict call.
type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
}
