package flyerscan

import "path/filepath"

type options struct {
	modelDir   string
	modelPath  string
	vocabPath  string
	labelsPath string
	withoutNER bool
}

// Option configures an Extractor instance.
type Option func(*options)

// WithModelDir sets the directory containing NER model files.
// Expects: model.onnx, vocab.txt, labels.txt.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for each model file.
// Use this when model files aren't in the default directory layout.
func WithModelPaths(model, vocab, labels string) Option {
	return func(o *options) {
		o.modelPath = model
		o.vocabPath = vocab
		o.labelsPath = labels
	}
}

// WithoutNER disables the neural named-entity recognizer. Venue and
// organizer detection fall back to cue-phrase and address heuristics.
// Use this when no ONNX runtime or model files are available.
func WithoutNER() Option {
	return func(o *options) {
		o.withoutNER = true
	}
}

func defaultOptions() options {
	return options{}
}

// resolvePaths determines the model, vocab, and labels file paths
// from the configured options. Explicit paths take precedence over modelDir.
func resolvePaths(o options) (model, vocab, labels string) {
	if o.modelPath != "" {
		return o.modelPath, o.vocabPath, o.labelsPath
	}
	dir := o.modelDir
	if dir == "" {
		dir = "models"
	}
	return filepath.Join(dir, "model.onnx"),
		filepath.Join(dir, "vocab.txt"),
		filepath.Join(dir, "labels.txt")
}
