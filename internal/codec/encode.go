package codec

import (
	"fmt"

	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a resolved model. It fails with a
// *diag.SerializationInvariantError if any Type is still a placeholder; in
// that case no bytes are returned.
func Encode(sys *model.System) ([]byte, error) {
	w, err := toWire(sys)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal system model: %w", err)
	}
	return data, nil
}

// encodeType is the gate. Every Kind is listed so that a new one has to be
// classified here before it can be exported.
func encodeType(path string, t types.Type) (wireType, error) {
	switch t.Kind {
	case types.Int32:
		return wireType{Kind: tagInt32}, nil
	case types.Data:
		if t.Refs.IsZero() {
			return wireType{}, fmt.Errorf("internal error: Data type at %s has no declaration reference", path)
		}
		return wireType{Kind: tagData, Refs: t.Refs.String()}, nil
	case types.UnsolvedNoHint, types.UnsolvedHinted:
		return wireType{}, &diag.SerializationInvariantError{Path: path, Type: t}
	}
	return wireType{}, &diag.SerializationInvariantError{Path: path, Type: t}
}

func encodeBinding(path string, b model.Binding) (wireBinding, error) {
	ty, err := encodeType(path+"/"+b.Name.String(), b.Type)
	if err != nil {
		return wireBinding{}, err
	}
	return wireBinding{Name: b.Name.String(), Type: ty}, nil
}

func encodeBindings(path string, bs []model.Binding) ([]wireBinding, error) {
	if len(bs) == 0 {
		return nil, nil
	}
	out := make([]wireBinding, 0, len(bs))
	for _, b := range bs {
		w, err := encodeBinding(path, b)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func toWire(sys *model.System) (*wireSystem, error) {
	out := &wireSystem{}
	for _, u := range sys.Units {
		wu := wireUnit{Name: u.Name.String()}
		data, err := encodeData(u.Data)
		if err != nil {
			return nil, err
		}
		wu.Data = data

		for _, m := range u.Modules {
			wm := wireModule{Name: m.Name.String()}
			if wm.Data, err = encodeData(m.Data); err != nil {
				return nil, err
			}
			for _, fn := range m.Functions {
				wf, err := encodeFunction(fn)
				if err != nil {
					return nil, err
				}
				wm.Functions = append(wm.Functions, wf)
			}
			wu.Modules = append(wu.Modules, wm)
		}
		out.Units = append(out.Units, wu)
	}
	return out, nil
}

func encodeData(ds []*model.Data) ([]wireData, error) {
	var out []wireData
	for _, d := range ds {
		fields, err := encodeBindings(d.Name.String(), d.Fields)
		if err != nil {
			return nil, err
		}
		out = append(out, wireData{Name: d.Name.String(), Fields: fields})
	}
	return out, nil
}

func encodeFunction(fn *model.Function) (wireFunction, error) {
	at := fn.Name.String()
	wf := wireFunction{Name: at}

	params, err := encodeBindings(at, fn.Params)
	if err != nil {
		return wireFunction{}, err
	}
	wf.Params = params

	if fn.Returns != nil {
		ret, err := encodeBinding(at, *fn.Returns)
		if err != nil {
			return wireFunction{}, err
		}
		wf.Returns = &ret
	}

	for _, a := range fn.Annotations {
		wa, err := encodeAnnotation(at, a)
		if err != nil {
			return wireFunction{}, err
		}
		wf.Annotations = append(wf.Annotations, wa)
	}
	return wf, nil
}

func encodeAnnotation(at string, a model.Annotation) (wireAnnotation, error) {
	switch a := a.(type) {
	case *model.Modify:
		target, err := encodeBinding(at, a.Target)
		if err != nil {
			return wireAnnotation{}, err
		}
		uses, err := encodeBindings(at, a.Uses)
		if err != nil {
			return wireAnnotation{}, err
		}
		return wireAnnotation{Kind: annotationModify, Modify: &wireModify{Target: target, Uses: uses}}, nil

	case *model.Spawn:
		result, err := encodeBinding(at, a.Result)
		if err != nil {
			return wireAnnotation{}, err
		}
		ws := &wireSpawn{Result: result}
		for _, d := range a.Details {
			wd, err := encodeDetail(at, d)
			if err != nil {
				return wireAnnotation{}, err
			}
			ws.Details = append(ws.Details, wd)
		}
		return wireAnnotation{Kind: annotationSpawn, Spawn: ws}, nil
	}
	return wireAnnotation{}, fmt.Errorf("internal error: unsupported annotation %T in %s", a, at)
}

func encodeDetail(at string, d model.SpawnDetail) (wireDetail, error) {
	switch d := d.(type) {
	case *model.Use:
		b, err := encodeBinding(at, d.Binding)
		if err != nil {
			return wireDetail{}, err
		}
		return wireDetail{Kind: detailUse, Binding: &b}, nil

	case *model.Return:
		b, err := encodeBinding(at, d.Binding)
		if err != nil {
			return wireDetail{}, err
		}
		return wireDetail{Kind: detailReturn, Binding: &b}, nil

	case *model.LetTo:
		ty, err := encodeType(at+"/"+d.Name.String(), d.Type)
		if err != nil {
			return wireDetail{}, err
		}
		args, err := encodeBindings(at, d.Args)
		if err != nil {
			return wireDetail{}, err
		}
		return wireDetail{Kind: detailLetTo, LetTo: &wireLetTo{
			Name: d.Name.String(),
			Type: ty,
			Func: d.Func.String(),
			Args: args,
		}}, nil

	case *model.Unknown:
		return wireDetail{Kind: detailUnknown, Unknown: d.Kind}, nil
	}
	return wireDetail{}, fmt.Errorf("internal error: unsupported spawn detail %T in %s", d, at)
}
