package entity

import "fmt"

// ONNXRecognizer is a Recognizer backed by a local BERT-style token
// classification model. Loading is expensive — create once at startup and
// reuse; inference is read-only and safe for concurrent calls.
type ONNXRecognizer struct {
	session *onnxSession
	tok     *tokenizer
	labels  *labelSet
}

// NewONNXRecognizer loads the NER model, vocabulary, and BIO label
// inventory. The pipeline is: tokenize with offsets → per-token logits →
// argmax → BIO decode back to verbatim spans of the input text.
func NewONNXRecognizer(modelPath, vocabPath, labelsPath string) (*ONNXRecognizer, error) {
	sess, err := newONNXSession(modelPath)
	if err != nil {
		return nil, fmt.Errorf("entity: %w", err)
	}

	tok, err := newTokenizer(vocabPath)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("entity: %w", err)
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("entity: %w", err)
	}

	if int(sess.numLabels) != labels.count() {
		sess.close()
		return nil, fmt.Errorf("entity: model has %d classes but labels file has %d",
			sess.numLabels, labels.count())
	}

	return &ONNXRecognizer{session: sess, tok: tok, labels: labels}, nil
}

// Entities runs NER over the text and returns recognized spans in document
// order. Long inputs are processed in sequence windows.
func (r *ONNXRecognizer) Entities(text string) ([]Entity, error) {
	tokens := r.tok.tokenize(text)

	var entities []Entity
	for _, win := range chunk(tokens) {
		ids, mask, typeIDs, seqLen := r.tok.encode(win)

		logits, err := r.session.infer(ids, mask, typeIDs, seqLen)
		if err != nil {
			return nil, fmt.Errorf("entity: %w", err)
		}

		// Argmax per token, skipping the [CLS] and [SEP] positions.
		tags := make([]string, len(win))
		n := r.session.numLabels
		for i := range win {
			off := int64(i+1) * n
			tags[i] = r.labels.tag(argmax(logits[off : off+n]))
		}

		entities = append(entities, decodeBIO(text, win, tags)...)
	}
	return entities, nil
}

// Close releases ONNX Runtime resources.
func (r *ONNXRecognizer) Close() error {
	if r.session != nil {
		return r.session.close()
	}
	return nil
}

func argmax(scores []float32) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

// decodeBIO merges consecutive B-/I- tagged tokens into entities. Entity
// text is sliced from the original input, so spans stay verbatim substrings.
// A lone I- tag opens an entity too: subword tagging is noisy and dropping
// the span loses more than it saves.
func decodeBIO(text string, tokens []wordToken, tags []string) []Entity {
	var entities []Entity

	open := false
	var label string
	var start, end int

	flush := func() {
		if open {
			entities = append(entities, Entity{Text: text[start:end], Label: label})
			open = false
		}
	}

	for i, tag := range tags {
		prefix, lbl := splitTag(tag)
		switch {
		case prefix == "B" || (prefix == "I" && (!open || lbl != label)):
			flush()
			open = true
			label = lbl
			start = tokens[i].start
			end = tokens[i].end
		case prefix == "I":
			if tokens[i].end > end {
				end = tokens[i].end
			}
		default:
			flush()
		}
	}
	flush()

	return entities
}
