// Command classify runs the full classification pipeline over a local
// image file and prints the ranked predictions as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"sitecheck-backend/inference"
	"sitecheck-backend/models"
	"sitecheck-backend/service"
)

func main() {
	modelPath := flag.String("model", "models/sitecheck.onnx", "path to the ONNX model")
	sharedLib := flag.String("ort", "", "path to the onnxruntime shared library")
	flag.Parse()

	if flag.NArg() != 1 {
		logrus.Fatal("usage: classify [flags] <image-file>")
	}

	_ = godotenv.Load()
	if *sharedLib == "" {
		*sharedLib = os.Getenv("ONNX_SHARED_LIB")
	}

	imageData, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logrus.Fatalf("Failed to read image: %v", err)
	}

	svc := service.NewPredictionService(
		service.WithPredictor(inference.LazyEngine{
			ModelPath: *modelPath,
			SharedLib: *sharedLib,
		}),
	)

	predictions, err := svc.Classify(context.Background(), imageData)
	if err != nil {
		logrus.Fatalf("Classification failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(models.PredictResponse{Predictions: predictions}); err != nil {
		logrus.Fatalf("Failed to encode predictions: %v", err)
	}
}
