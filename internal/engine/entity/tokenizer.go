package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSeqLen = 128

// span is one basic token: its byte range in the original text plus the
// normalized form used for vocabulary lookup. Byte ranges let decoded
// entities slice the original text verbatim instead of reassembling it
// from lowercased pieces.
type span struct {
	form  string
	start int
	end   int
}

// wordToken is a WordPiece subtoken carrying the byte range of the basic
// token it came from.
type wordToken struct {
	piece string
	start int
	end   int
}

// tokenizer performs BERT-style WordPiece tokenization with offset tracking.
type tokenizer struct {
	vocab *vocab
}

// newTokenizer creates a tokenizer from a vocab.txt file.
func newTokenizer(vocabPath string) (*tokenizer, error) {
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v}, nil
}

// basicTokenize splits text on whitespace and punctuation, recording the
// byte range of each token. Punctuation runes become single-rune tokens.
func basicTokenize(text string) []span {
	var spans []span
	start := -1
	for i, r := range text {
		switch {
		case unicode.IsSpace(r) || unicode.IsControl(r) || r == 0xFFFD:
			if start >= 0 {
				spans = append(spans, makeSpan(text, start, i))
				start = -1
			}
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			if start >= 0 {
				spans = append(spans, makeSpan(text, start, i))
				start = -1
			}
			spans = append(spans, makeSpan(text, i, i+len(string(r))))
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		spans = append(spans, makeSpan(text, start, len(text)))
	}
	return spans
}

func makeSpan(text string, start, end int) span {
	return span{form: lookupForm(text[start:end]), start: start, end: end}
}

// lookupForm lowercases and strips combining accents, matching how uncased
// BERT vocabularies are built.
func lookupForm(s string) string {
	s = strings.ToLower(s)
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tokenize converts text into WordPiece subtokens with source offsets.
func (t *tokenizer) tokenize(text string) []wordToken {
	var tokens []wordToken
	for _, sp := range basicTokenize(text) {
		for _, piece := range t.wordpieceToken(sp.form) {
			tokens = append(tokens, wordToken{piece: piece, start: sp.start, end: sp.end})
		}
	}
	return tokens
}

// wordpieceToken decomposes a single basic token into WordPiece subwords
// using greedy longest-match-first. Tokens that cannot be decomposed map to
// a single [UNK].
func (t *tokenizer) wordpieceToken(token string) []string {
	runes := []rune(token)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) > 200 {
		return []string{"[UNK]"}
	}

	var subTokens []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := false
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if t.vocab.contains(sub) {
				subTokens = append(subTokens, sub)
				found = true
				break
			}
			end--
		}
		if !found {
			return []string{"[UNK]"}
		}
		start = end
	}
	return subTokens
}

// chunk groups tokens into windows that fit [CLS] + tokens + [SEP] within
// maxSeqLen, preserving order. Long flyer text is classified window by
// window rather than truncated.
func chunk(tokens []wordToken) [][]wordToken {
	if len(tokens) == 0 {
		return nil
	}
	window := maxSeqLen - 2
	var chunks [][]wordToken
	for start := 0; start < len(tokens); start += window {
		end := start + window
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[start:end])
	}
	return chunks
}

// encode packs one chunk into padded ID slices for inference:
// [CLS] tokens... [SEP] [PAD]...
func (t *tokenizer) encode(tokens []wordToken) (inputIDs, attentionMask, tokenTypeIDs []int64, seqLen int64) {
	seqLen = int64(len(tokens) + 2)

	ids := make([]int64, seqLen)
	mask := make([]int64, seqLen)
	typeIDs := make([]int64, seqLen) // all zeros

	ids[0] = t.vocab.clsID
	mask[0] = 1
	for i, tok := range tokens {
		ids[i+1] = t.vocab.lookup(tok.piece)
		mask[i+1] = 1
	}
	ids[len(tokens)+1] = t.vocab.sepID
	mask[len(tokens)+1] = 1

	return ids, mask, typeIDs, seqLen
}
