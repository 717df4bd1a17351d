package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todo-backend/internal/model"
)

var (
	errInvalidJSON  = errors.New("invalid request body")
	errInvalidOrder = errors.New("order must be a 32-bit integer")
)

// todoFields is the set of todo fields a request body may carry.
// A key that is missing or null is absent.
type todoFields struct {
	Title     model.Optional[string]
	Completed model.Optional[bool]
	Order     model.Optional[int]
}

func (f todoFields) patch() model.TodoPatch {
	return model.TodoPatch{
		Title:     f.Title,
		Completed: f.Completed,
		Order:     f.Order,
	}
}

// decodeTodoFields reads a JSON object from r. An empty body is treated as {}.
// Clients send completed and order either as JSON values or as strings
// ("true", "3"), so both forms are accepted.
func decodeTodoFields(r io.Reader) (todoFields, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return todoFields{}, nil
		}
		return todoFields{}, errInvalidJSON
	}

	var (
		f   todoFields
		err error
	)
	if f.Title, err = decodeTitle(raw["title"]); err != nil {
		return todoFields{}, err
	}
	if f.Completed, err = decodeCompleted(raw["completed"]); err != nil {
		return todoFields{}, err
	}
	if f.Order, err = decodeOrder(raw["order"]); err != nil {
		return todoFields{}, err
	}
	return f, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeTitle(raw json.RawMessage) (model.Optional[string], error) {
	if isAbsent(raw) {
		return model.None[string](), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.None[string](), fmt.Errorf("title must be a string")
	}
	return model.Some(s), nil
}

func decodeCompleted(raw json.RawMessage) (model.Optional[bool], error) {
	if isAbsent(raw) {
		return model.None[bool](), nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return model.Some(b), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.None[bool](), fmt.Errorf("completed must be a boolean")
	}
	return model.Some(strings.EqualFold(strings.TrimSpace(s), "true")), nil
}

// decodeOrder bounds order to 32 bits, the width every storage backend keeps.
func decodeOrder(raw json.RawMessage) (model.Optional[int], error) {
	if isAbsent(raw) {
		return model.None[int](), nil
	}
	var n int32
	if err := json.Unmarshal(raw, &n); err == nil {
		return model.Some(int(n)), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.None[int](), errInvalidOrder
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return model.None[int](), errInvalidOrder
	}
	return model.Some(int(v)), nil
}
