package market_test

import (
	"context"
	"encoding/json"

	"github.com/balumaqsud/artily-client/market"
)

// fakeDoer records the operations a service issues and answers them from
// canned JSON data payloads.
type fakeDoer struct {
	calls   []call
	respond map[string]string
	errs    map[string]error
}

type call struct {
	name string
	vars map[string]any
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{
		respond: map[string]string{},
		errs:    map[string]error{},
	}
}

func (f *fakeDoer) Do(_ context.Context, name, _ string, vars map[string]any, out any) error {
	f.calls = append(f.calls, call{name: name, vars: vars})

	if err := f.errs[name]; err != nil {
		return err
	}

	raw, ok := f.respond[name]
	if !ok || out == nil {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeDoer) lastCall() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

var _ market.Doer = (*fakeDoer)(nil)
