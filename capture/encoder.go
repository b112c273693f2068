package capture

import (
	"context"
	"fmt"
	"io"
	"sync"

	"backend/utils"
)

// EncodingError identifies the attachment whose conversion failed so the
// reporter can retry or remove it.
type EncodingError struct {
	Name string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Name, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Input is one attachment to convert into its durable representation.
type Input struct {
	Name string
	MIME string
	Open func() (io.ReadCloser, error)
}

// EncodeAll converts every input to a base64 data URL. Conversions run
// concurrently and may finish out of order, but the result slice is always
// in original attachment order. The first failure is returned as an
// *EncodingError; results are discarded in that case.
func EncodeAll(ctx context.Context, inputs []Input) ([]string, error) {
	results := make([]string, len(inputs))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = &EncodingError{Name: name, Err: err}
		}
	}

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				setErr(in.Name, err)
				return
			}
			rc, err := in.Open()
			if err != nil {
				setErr(in.Name, err)
				return
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				setErr(in.Name, err)
				return
			}
			results[i] = utils.DataURL(in.MIME, data)
		}(i, in)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
