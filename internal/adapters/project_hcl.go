package adapters

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

// ProjectHCLAdapter reads HCL project descriptors. A top-level properties
// map is exposed to the rest of the file as prop.<name>.
type ProjectHCLAdapter struct{}

func NewProjectHCLAdapter() ProjectHCLAdapter {
	return ProjectHCLAdapter{}
}

type hclProperties struct {
	Properties map[string]string `hcl:"properties,optional"`
	Remain     hcl.Body          `hcl:",remain"`
}

func (a ProjectHCLAdapter) LoadProject(path string) (types.ProjectFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		code := errbuilder.CodeInvalidArgument
		if file == nil {
			code = errbuilder.CodeNotFound
		}
		return types.ProjectFile{}, errbuilder.New().
			WithCode(code).
			WithMsg("failed to parse project hcl").
			WithCause(diags)
	}

	var props hclProperties
	if diags := gohcl.DecodeBody(file.Body, nil, &props); diags.HasErrors() {
		return types.ProjectFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to decode project properties").
			WithCause(diags)
	}

	var project types.ProjectFile
	if diags := gohcl.DecodeBody(props.Remain, propertyContext(props.Properties), &project); diags.HasErrors() {
		return types.ProjectFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to decode project hcl %s", path)).
			WithCause(diags)
	}
	return project, nil
}

func propertyContext(properties map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(properties))
	for name, value := range properties {
		values[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"prop": cty.ObjectVal(values),
		},
	}
}

var _ ports.ProjectLoaderPort = ProjectHCLAdapter{}
