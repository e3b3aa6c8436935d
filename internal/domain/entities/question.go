package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// QuestionKind tags a question with the shape it was received in.
// It only matters for rendering; navigation and scoring treat all kinds alike.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindTrueFalse      QuestionKind = "true_false"
)

var (
	ErrDuplicateOption = errors.New("duplicate option key")
	ErrInvalidOptions  = errors.New("options must be an object")
)

// Option is a single answer choice of a question.
type Option struct {
	Key  string
	Text string
}

// Options keeps answer choices in the order they were received.
type Options []Option

// Text returns the text of the option with the given key.
func (o Options) Text(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Text, true
		}
	}
	return "", false
}

// Has reports whether key is one of the options.
func (o Options) Has(key string) bool {
	_, ok := o.Text(key)
	return ok
}

// Keys returns option keys in order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, opt := range o {
		keys = append(keys, opt.Key)
	}
	return keys
}

// UnmarshalJSON decodes a JSON object into options, keeping key order.
func (o *Options) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidOptions
	}

	var out Options
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return ErrInvalidOptions
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}

		if out.Has(key) {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, key)
		}
		out = append(out, Option{Key: key, Text: optionText(value)})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

// MarshalJSON encodes options back into a JSON object in their original order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping into options, keeping key order.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*o = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return ErrInvalidOptions
	}

	out := make(Options, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if out.Has(key) {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, key)
		}
		out = append(out, Option{Key: key, Text: node.Content[i+1].Value})
	}

	*o = out
	return nil
}

func optionText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Question is one entry of a normalized quiz.
type Question struct {
	Kind             QuestionKind
	Prompt           string
	Options          Options
	CorrectOptionKey string
}

// IsCorrect reports whether key is the correct answer.
func (q Question) IsCorrect(key string) bool {
	return key == q.CorrectOptionKey
}

// MultipleChoiceQuestion is the wire shape of a multiple-choice question.
type MultipleChoiceQuestion struct {
	Question      string  `json:"question" yaml:"question"`
	Options       Options `json:"options" yaml:"options"`
	CorrectOption string  `json:"correct_option" yaml:"correct_option"`
}

// TrueFalseQuestion is the wire shape of a true/false statement.
type TrueFalseQuestion struct {
	Statement     string  `json:"statement" yaml:"statement"`
	Options       Options `json:"options" yaml:"options"`
	CorrectOption string  `json:"correct_option" yaml:"correct_option"`
}

// QuizPayload is a generated quiz as delivered by a quiz source.
// Either collection may be missing.
type QuizPayload struct {
	MultipleChoice []MultipleChoiceQuestion `json:"multiple_choice_questions" yaml:"multiple_choice_questions"`
	TrueFalse      []TrueFalseQuestion      `json:"true_or_false_questions" yaml:"true_or_false_questions"`
}
