package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "unit", LabelNames: []string{"name"}},
	},
}

var unitSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "data", LabelNames: []string{"name"}},
		{Type: "module", LabelNames: []string{"name"}},
	},
}

var moduleSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "data", LabelNames: []string{"name"}},
		{Type: "function", LabelNames: []string{"name"}},
	},
}

var dataSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

var functionSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "param", LabelNames: []string{"name"}},
		{Type: "returns", LabelNames: []string{"name"}},
		{Type: "modify", LabelNames: []string{"target"}},
		{Type: "spawn", LabelNames: []string{"result"}},
	},
}

var modifySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "uses"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "use", LabelNames: []string{"name"}},
	},
}

// bindingBody is the body of field, param, returns, use and return blocks.
type bindingBody struct {
	Type hcl.Expression `hcl:"type,optional"`
}

// letToBody is the body of a let_to block inside spawn.
type letToBody struct {
	Func string         `hcl:"func"`
	Args hcl.Expression `hcl:"args,optional"`
	Type hcl.Expression `hcl:"type,optional"`
}
