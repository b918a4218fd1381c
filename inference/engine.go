package inference

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"sitecheck-backend/models"
	"sitecheck-backend/vision"
)

const (
	canonicalInputName  = "images"
	canonicalOutputName = "output0"
)

// NumClasses is the length of the model's output vector, one score per
// taxonomy entry.
var NumClasses = len(models.DefaultTaxonomy)

// OutputError indicates the model produced no usable output tensor.
type OutputError struct {
	Name string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("model produced no usable output tensor (tried %q)", e.Name)
}

// Engine wraps a single ONNX Runtime session over the detection model.
// Run calls are serialized because the session reuses its input and
// output tensors.
type Engine struct {
	mu         sync.Mutex
	session    *ort.AdvancedSession
	input      *ort.Tensor[float32]
	output     *ort.Tensor[float32]
	outputName string
}

var (
	engine     *Engine
	engineErr  error
	engineOnce sync.Once
)

// Get returns the process-wide engine, initializing it on first use. The
// handle lives until process exit; there is no teardown.
func Get(modelPath, sharedLib string) (*Engine, error) {
	engineOnce.Do(func() {
		engine, engineErr = newEngine(modelPath, sharedLib)
	})
	return engine, engineErr
}

// LazyEngine defers engine construction to the first Predict call, so the
// server can start before the model is loaded.
type LazyEngine struct {
	ModelPath string
	SharedLib string
}

// Predict initializes the shared engine if needed and runs inference.
func (l LazyEngine) Predict(input []float32) ([]float32, error) {
	e, err := Get(l.ModelPath, l.SharedLib)
	if err != nil {
		return nil, err
	}
	return e.Predict(input)
}

func newEngine(modelPath, sharedLib string) (*Engine, error) {
	if sharedLib != "" {
		ort.SetSharedLibraryPath(sharedLib)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	inputName, outputName, err := resolveTensorNames(modelPath)
	if err != nil {
		return nil, err
	}

	inputShape := ort.NewShape(1, vision.Channels, vision.InputHeight, vision.InputWidth)
	inputTensor, err := ort.NewTensor(inputShape, make([]float32, vision.TensorSize))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(NumClasses)))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Engine{
		session:    session,
		input:      inputTensor,
		output:     outputTensor,
		outputName: outputName,
	}, nil
}

// resolveTensorNames picks the canonical tensor names, falling back to
// the first declared name when the canonical one is absent.
func resolveTensorNames(modelPath string) (string, string, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return "", "", fmt.Errorf("read model metadata: %w", err)
	}

	inputName := canonicalInputName
	if !containsName(inputs, inputName) && len(inputs) > 0 {
		inputName = inputs[0].Name
	}

	outputName := canonicalOutputName
	if !containsName(outputs, outputName) {
		if len(outputs) == 0 {
			return "", "", &OutputError{Name: canonicalOutputName}
		}
		outputName = outputs[0].Name
	}

	return inputName, outputName, nil
}

func containsName(infos []ort.InputOutputInfo, name string) bool {
	for _, info := range infos {
		if info.Name == name {
			return true
		}
	}
	return false
}

// Predict runs the model over a planar 3x640x640 tensor and returns a
// copy of the flat class-probability vector.
func (e *Engine) Predict(input []float32) ([]float32, error) {
	if len(input) != vision.TensorSize {
		return nil, fmt.Errorf("input tensor has %d elements, want %d", len(input), vision.TensorSize)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.input.GetData(), input)
	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}

	out := e.output.GetData()
	if len(out) != NumClasses {
		return nil, &OutputError{Name: e.outputName}
	}

	probs := make([]float32, len(out))
	copy(probs, out)
	return probs, nil
}
