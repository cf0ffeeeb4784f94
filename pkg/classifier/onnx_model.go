package classifier

import (
	"errors"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXModel runs a single-input single-output image model. Inputs shaped
// [1,3,H,W] get the NHWC tensor transposed.
type ONNXModel struct {
	session       *ort.AdvancedSession
	input         *ort.Tensor[float32]
	output        *ort.Tensor[float32]
	channelsFirst bool
}

func NewONNXModel(modelPath, libPath string) (*ONNXModel, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, err
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("onnxruntime init: %w", err)
		}
	}
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", modelPath, err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("model must have one input and one output, has %d/%d", len(inputs), len(outputs))
	}

	channelsFirst := len(inputs[0].Dimensions) == 4 && inputs[0].Dimensions[1] == 3
	inShape := ort.NewShape(1, InputSize, InputSize, 3)
	if channelsFirst {
		inShape = ort.NewShape(1, 3, InputSize, InputSize)
	}
	outShape := make(ort.Shape, len(outputs[0].Dimensions))
	for i, d := range outputs[0].Dimensions {
		if d < 1 {
			d = 1
		}
		outShape[i] = d
	}

	in, err := ort.NewEmptyTensor[float32](inShape)
	if err != nil {
		return nil, err
	}
	out, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		in.Destroy()
		return nil, err
	}
	session, err := ort.NewAdvancedSession(modelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name},
		[]ort.Value{in}, []ort.Value{out}, nil)
	if err != nil {
		in.Destroy()
		out.Destroy()
		return nil, fmt.Errorf("onnx session: %w", err)
	}
	return &ONNXModel{session: session, input: in, output: out, channelsFirst: channelsFirst}, nil
}

func (m *ONNXModel) Predict(input []float32) ([]float32, error) {
	dst := m.input.GetData()
	if len(input) != len(dst) {
		return nil, fmt.Errorf("input has %d values, model wants %d", len(input), len(dst))
	}
	if m.channelsFirst {
		toCHW(dst, input)
	} else {
		copy(dst, input)
	}
	if err := m.session.Run(); err != nil {
		return nil, err
	}
	res := m.output.GetData()
	probs := make([]float32, len(res))
	copy(probs, res)
	return probs, nil
}

func (m *ONNXModel) Close() error {
	return errors.Join(m.session.Destroy(), m.input.Destroy(), m.output.Destroy())
}

func toCHW(dst, hwc []float32) {
	plane := InputSize * InputSize
	for i := 0; i < plane; i++ {
		dst[i] = hwc[i*3]
		dst[plane+i] = hwc[i*3+1]
		dst[2*plane+i] = hwc[i*3+2]
	}
}
