package ast

// BinaryExpression covers arithmetic, bitwise, comparison, and equality
// operators: + - * / % ** & | ^ << >> < <= > >= == === != !==.
type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// LogicalExpression is &&, || or ??, which short-circuit.
type LogicalExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

// UnaryExpression is + - ! or typeof applied to a single operand.
type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Argument Expression
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

// UpdateExpression is ++ or --, pre- or post-fix, on an identifier or
// member expression slot.
type UpdateExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Argument Expression
	Prefix   bool
}

func NewUpdateExpression(operator string, argument Expression, prefix bool) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Argument: argument, Prefix: prefix}
}

// AssignmentExpression covers `=` and the compound operators
// (+= -= *= /= %= **= ^= &= |= <<= >>=). Left is an Identifier or a
// MemberExpression.
type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewAssignmentExpression(operator string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

// CallExpression is `callee(args...)`. Optional marks `callee?.(args...)`.
type CallExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression
	Arguments []Expression
	Optional  bool
}

func NewCallExpression(callee Expression, arguments []Expression, optional bool) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments, Optional: optional}
}

// MemberExpression is `object.prop` (Computed=false, Property is an
// Identifier) or `object[expr]` (Computed=true). Optional marks `?.`.
type MemberExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object   Expression
	Property Expression
	Computed bool
	Optional bool
}

func NewMemberExpression(object, property Expression, computed, optional bool) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property, Computed: computed, Optional: optional}
}

// ChainExpression wraps a member/call chain containing at least one
// optional (`?.`) link; it is the boundary where a short-circuited link
// (reported by the interpreter as a flag, §4.E) ends and yields undefined.
type ChainExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Expression Expression
}

func NewChainExpression(expr Expression) *ChainExpression {
	return &ChainExpression{nodeImpl: newNodeImpl(NodeChainExpression), Expression: expr}
}

// DeleteExpression is `delete object.prop` / `delete object[expr]` / a
// chain expression (§4.C "Delete"). Argument is the expression being
// deleted; it must be a MemberExpression or a ChainExpression wrapping one.
type DeleteExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Argument Expression
}

func NewDeleteExpression(argument Expression) *DeleteExpression {
	return &DeleteExpression{nodeImpl: newNodeImpl(NodeDeleteExpression), Argument: argument}
}
