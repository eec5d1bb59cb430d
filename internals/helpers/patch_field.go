package helper

import "github.com/bytedance/sonic"

// PatchField membedakan "tidak dikirim" vs "dikirim null" vs "dikirim nilai".
type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// Ptr: nil kalau tidak dikirim; null dianggap nilai nol.
func (p PatchField[T]) Ptr() *T {
	if !p.Present {
		return nil
	}
	if p.Value == nil {
		var zero T
		return &zero
	}
	v := *p.Value
	return &v
}
