package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Code generation (1000-1999)
	CodegenInfo                Code = 1000
	CodegenUnsupportedOperator Code = 1001
	CodegenUnsupportedNode     Code = 1002
	CodegenUnsupportedTarget   Code = 1003
	CodegenGlobalRedeclared    Code = 1004
	CodegenGlobalParameter     Code = 1005
	CodegenAssignInExpression  Code = 1006

	// Host materialization and execution (2000-2999)
	HostInfo          Code = 2000
	HostCompileFailed Code = 2001
	HostRuntimeError  Code = 2002
	HostDiscarded     Code = 2003

	// Input / descriptor errors (3000-3999)
	IOInfo           Code = 3000
	IOLoadFileError  Code = 3001
	IODecodeError    Code = 3002
	IOCacheError     Code = 3003
	IOConfigError    Code = 3004
	IOWriteError     Code = 3005
	IOOutputConflict Code = 3006
)

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	CodegenInfo:                "Code generation information",
	CodegenUnsupportedOperator: "Operator has no runtime mapping",
	CodegenUnsupportedNode:     "Node kind not supported by the translator",
	CodegenUnsupportedTarget:   "Assignment target shape not supported",
	CodegenGlobalRedeclared:    "Local declaration of a global name",
	CodegenGlobalParameter:     "Parameter named after a global",
	CodegenAssignInExpression:  "Assignment used as a value",
	HostInfo:                   "Host information",
	HostCompileFailed:          "Generated code failed to compile",
	HostRuntimeError:           "Shader failed at run time",
	HostDiscarded:              "Shader invocation discarded",
	IOInfo:                     "Input information",
	IOLoadFileError:            "Cannot read input file",
	IODecodeError:              "Malformed shader descriptor",
	IOCacheError:               "Artifact cache failure",
	IOConfigError:              "Invalid configuration",
	IOWriteError:               "Cannot write output file",
	IOOutputConflict:           "Two inputs share an output file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("HOST%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
