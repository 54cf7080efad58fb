package codec

// Wire DTOs. Only plain strings and slices cross the boundary.

const (
	tagInt32 = "i32"
	tagData  = "Data"

	annotationModify = "modify"
	annotationSpawn  = "spawn"

	detailUse     = "use"
	detailLetTo   = "let_to"
	detailReturn  = "return"
	detailUnknown = "unknown"
)

type wireSystem struct {
	Units []wireUnit `msgpack:"units"`
}

type wireUnit struct {
	Name    string       `msgpack:"name"`
	Data    []wireData   `msgpack:"data,omitempty"`
	Modules []wireModule `msgpack:"modules,omitempty"`
}

type wireModule struct {
	Name      string         `msgpack:"name"`
	Data      []wireData     `msgpack:"data,omitempty"`
	Functions []wireFunction `msgpack:"functions,omitempty"`
}

type wireData struct {
	Name   string        `msgpack:"name"`
	Fields []wireBinding `msgpack:"fields,omitempty"`
}

type wireFunction struct {
	Name        string           `msgpack:"name"`
	Params      []wireBinding    `msgpack:"params,omitempty"`
	Returns     *wireBinding     `msgpack:"returns,omitempty"`
	Annotations []wireAnnotation `msgpack:"annotations,omitempty"`
}

type wireBinding struct {
	Name string   `msgpack:"name"`
	Type wireType `msgpack:"type"`
}

type wireType struct {
	Kind string `msgpack:"kind"`
	Refs string `msgpack:"refs,omitempty"`
}

// wireAnnotation is a tagged union; exactly one payload matches Kind.
type wireAnnotation struct {
	Kind   string      `msgpack:"kind"`
	Modify *wireModify `msgpack:"modify,omitempty"`
	Spawn  *wireSpawn  `msgpack:"spawn,omitempty"`
}

type wireModify struct {
	Target wireBinding   `msgpack:"target"`
	Uses   []wireBinding `msgpack:"uses,omitempty"`
}

type wireSpawn struct {
	Result  wireBinding  `msgpack:"result"`
	Details []wireDetail `msgpack:"details,omitempty"`
}

// wireDetail is a tagged union over spawn details.
type wireDetail struct {
	Kind    string       `msgpack:"kind"`
	Binding *wireBinding `msgpack:"binding,omitempty"`
	LetTo   *wireLetTo   `msgpack:"let_to,omitempty"`
	Unknown string       `msgpack:"unknown,omitempty"`
}

type wireLetTo struct {
	Name string        `msgpack:"name"`
	Type wireType      `msgpack:"type"`
	Func string        `msgpack:"func"`
	Args []wireBinding `msgpack:"args,omitempty"`
}
