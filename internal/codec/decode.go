package codec

import (
	"fmt"

	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/vmihailenco/msgpack/v5"
)

// Decode reads a model previously produced by Encode. Type tags other than
// "i32" and "Data" are rejected.
func Decode(data []byte) (*model.System, error) {
	var w wireSystem
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal system model: %w", err)
	}

	sys := &model.System{}
	for _, wu := range w.Units {
		un, err := name.Parse(wu.Name)
		if err != nil {
			return nil, fmt.Errorf("unit: %w", err)
		}
		u := &model.Unit{Name: un}
		if u.Data, err = decodeData(wu.Data); err != nil {
			return nil, err
		}
		for _, wm := range wu.Modules {
			mn, err := name.Parse(wm.Name)
			if err != nil {
				return nil, fmt.Errorf("module: %w", err)
			}
			m := &model.Module{Name: mn}
			if m.Data, err = decodeData(wm.Data); err != nil {
				return nil, err
			}
			for _, wf := range wm.Functions {
				fn, err := decodeFunction(wf)
				if err != nil {
					return nil, err
				}
				m.Functions = append(m.Functions, fn)
			}
			u.Modules = append(u.Modules, m)
		}
		sys.Units = append(sys.Units, u)
	}
	return sys, nil
}

func decodeType(w wireType) (types.Type, error) {
	switch w.Kind {
	case tagInt32:
		return types.NewInt32(), nil
	case tagData:
		refs, err := name.Parse(w.Refs)
		if err != nil {
			return types.Type{}, fmt.Errorf("data type reference: %w", err)
		}
		return types.NewData(refs), nil
	}
	return types.Type{}, fmt.Errorf("unknown type tag %q", w.Kind)
}

func decodeBinding(w wireBinding) (model.Binding, error) {
	n, err := name.Parse(w.Name)
	if err != nil {
		return model.Binding{}, err
	}
	ty, err := decodeType(w.Type)
	if err != nil {
		return model.Binding{}, fmt.Errorf("%s: %w", w.Name, err)
	}
	return model.Binding{Name: n, Type: ty}, nil
}

func decodeBindings(ws []wireBinding) ([]model.Binding, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	out := make([]model.Binding, 0, len(ws))
	for _, w := range ws {
		b, err := decodeBinding(w)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeData(ws []wireData) ([]*model.Data, error) {
	var out []*model.Data
	for _, w := range ws {
		n, err := name.Parse(w.Name)
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		fields, err := decodeBindings(w.Fields)
		if err != nil {
			return nil, err
		}
		out = append(out, &model.Data{Name: n, Fields: fields})
	}
	return out, nil
}

func decodeFunction(w wireFunction) (*model.Function, error) {
	n, err := name.Parse(w.Name)
	if err != nil {
		return nil, fmt.Errorf("function: %w", err)
	}
	fn := &model.Function{Name: n}
	if fn.Params, err = decodeBindings(w.Params); err != nil {
		return nil, err
	}
	if w.Returns != nil {
		ret, err := decodeBinding(*w.Returns)
		if err != nil {
			return nil, err
		}
		fn.Returns = &ret
	}
	for _, wa := range w.Annotations {
		a, err := decodeAnnotation(wa)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", w.Name, err)
		}
		fn.Annotations = append(fn.Annotations, a)
	}
	return fn, nil
}

func decodeAnnotation(w wireAnnotation) (model.Annotation, error) {
	switch {
	case w.Kind == annotationModify && w.Modify != nil:
		target, err := decodeBinding(w.Modify.Target)
		if err != nil {
			return nil, err
		}
		uses, err := decodeBindings(w.Modify.Uses)
		if err != nil {
			return nil, err
		}
		return &model.Modify{Target: target, Uses: uses}, nil

	case w.Kind == annotationSpawn && w.Spawn != nil:
		result, err := decodeBinding(w.Spawn.Result)
		if err != nil {
			return nil, err
		}
		s := &model.Spawn{Result: result}
		for _, wd := range w.Spawn.Details {
			d, err := decodeDetail(wd)
			if err != nil {
				return nil, err
			}
			s.Details = append(s.Details, d)
		}
		return s, nil
	}
	return nil, fmt.Errorf("malformed annotation of kind %q", w.Kind)
}

func decodeDetail(w wireDetail) (model.SpawnDetail, error) {
	switch {
	case w.Kind == detailUse && w.Binding != nil:
		b, err := decodeBinding(*w.Binding)
		if err != nil {
			return nil, err
		}
		return &model.Use{Binding: b}, nil

	case w.Kind == detailReturn && w.Binding != nil:
		b, err := decodeBinding(*w.Binding)
		if err != nil {
			return nil, err
		}
		return &model.Return{Binding: b}, nil

	case w.Kind == detailLetTo && w.LetTo != nil:
		n, err := name.Parse(w.LetTo.Name)
		if err != nil {
			return nil, err
		}
		ty, err := decodeType(w.LetTo.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w.LetTo.Name, err)
		}
		fn, err := name.Parse(w.LetTo.Func)
		if err != nil {
			return nil, err
		}
		args, err := decodeBindings(w.LetTo.Args)
		if err != nil {
			return nil, err
		}
		return &model.LetTo{Name: n, Type: ty, Func: fn, Args: args}, nil

	case w.Kind == detailUnknown:
		return &model.Unknown{Kind: w.Unknown}, nil
	}
	return nil, fmt.Errorf("malformed spawn detail of kind %q", w.Kind)
}
