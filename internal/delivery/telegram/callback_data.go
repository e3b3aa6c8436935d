package telegram

import (
	"errors"
	"strconv"
	"strings"
)

var errInvalidCallback = errors.New("invalid callback data")

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizSelect   = "sel"
	quizNext     = "next"
	quizPrevious = "prev"
	quizReset    = "reset"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// quizCallback is a decoded quiz button press.
//
// Tag is the short session ID the keyboard was built for. Options are
// addressed by position because keys may be too long for callback data.
type quizCallback struct {
	Op        string
	Tag       string
	Index     int
	OptionPos int
}

// parseQuizCallback decodes data produced by the build*Callback helpers.
func parseQuizCallback(cd callbackData) (quizCallback, error) {
	if cd.Action != actionQuiz || len(cd.Params) < 2 || cd.Params[1] == "" {
		return quizCallback{}, errInvalidCallback
	}

	qc := quizCallback{Op: cd.Params[0], Tag: cd.Params[1]}

	switch qc.Op {
	case quizSelect:
		if len(cd.Params) != 4 {
			return quizCallback{}, errInvalidCallback
		}
		index, err1 := strconv.Atoi(cd.Params[2])
		pos, err2 := strconv.Atoi(cd.Params[3])
		if err1 != nil || err2 != nil || index < 0 || pos < 0 {
			return quizCallback{}, errInvalidCallback
		}
		qc.Index, qc.OptionPos = index, pos

	case quizNext, quizPrevious, quizReset:
		if len(cd.Params) != 2 {
			return quizCallback{}, errInvalidCallback
		}

	default:
		return quizCallback{}, errInvalidCallback
	}

	return qc, nil
}

// buildSelectCallback builds callback data for choosing option pos of question index.
func buildSelectCallback(tag string, index, pos int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizSelect, tag, strconv.Itoa(index), strconv.Itoa(pos)},
	}.encode()
}

func buildNextCallback(tag string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizNext, tag}}.encode()
}

func buildPreviousCallback(tag string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizPrevious, tag}}.encode()
}

func buildResetCallback(tag string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizReset, tag}}.encode()
}
