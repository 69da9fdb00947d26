package gufunc

import (
	"github.com/gomlx/gufunc/signature"
)

// assembleShape returns the concrete shape of one argument: its extra dimensions from the plan
// (absent slots omitted) followed by its core dimensions resolved with the assignment.
func assembleShape(plan ExtraDimsPlan, arg int, template signature.ArgTemplate, assignment Assignment) []int {
	extra := plan.ArgDims(arg)
	dims := make([]int, 0, len(extra)+template.Rank())
	dims = append(dims, extra...)
	return append(dims, assignment.CoreShape(template)...)
}

// assembleShapes returns the concrete shapes of all inputs of the signature.
func assembleShapes(sig *signature.Signature, plan ExtraDimsPlan, assignment Assignment) [][]int {
	shapes := make([][]int, sig.NumInputs())
	for arg, template := range sig.Inputs {
		shapes[arg] = assembleShape(plan, arg, template, assignment)
	}
	return shapes
}
