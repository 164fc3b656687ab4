package codegen

// Runtime entry points for shading-language operators.
var (
	binaryOps = map[string]string{
		"==": "op_eq", "!=": "op_neq",
		"*": "op_mul", "/": "op_div", "%": "op_mod",
		"+": "op_add", "-": "op_sub",
		"<<": "op_shl", ">>": "op_shr",
		"<": "op_lt", ">": "op_gt", "<=": "op_le", ">=": "op_ge",
		"&": "op_band", "^": "op_bxor", "|": "op_bor",
		"&&": "op_land", "^^": "op_lxor", "||": "op_lor",
	}

	// assignOps maps compound assignments to the operator applied before
	// the store; plain "=" maps to the empty string.
	assignOps = map[string]string{
		"=":  "",
		"+=": "op_add", "-=": "op_sub", "*=": "op_mul", "/=": "op_div", "%=": "op_mod",
		"<<=": "op_shl", ">>=": "op_shr",
		"&=": "op_band", "^=": "op_bxor", "|=": "op_bor",
	}

	unaryOps = map[string]string{
		"+": "op_pos", "-": "op_neg", "~": "op_bnot", "!": "op_lnot",
	}

	// stepOps are the increment and decrement operators.
	stepOps = map[string]string{
		"++": "op_add", "--": "op_sub",
	}
)
