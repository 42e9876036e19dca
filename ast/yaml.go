package ast

// YAML marshalling tags every node with its kind so that dumps stay
// readable without Go type information.

func (*Skip) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string `yaml:"kind"`
	}{"skip"}, nil
}

func (s *Assignment) MarshalYAML() (interface{}, error) {
	return struct {
		Kind  string        `yaml:"kind"`
		Var   string        `yaml:"var"`
		Value ArithmeticExp `yaml:"value"`
	}{"assignment", s.Var, s.Value}, nil
}

func (s *Composition) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string    `yaml:"kind"`
		Lhs  Statement `yaml:"lhs"`
		Rhs  Statement `yaml:"rhs"`
	}{"composition", s.Lhs, s.Rhs}, nil
}

func (s *Conditional) MarshalYAML() (interface{}, error) {
	return struct {
		Kind        string     `yaml:"kind"`
		Guard       BooleanExp `yaml:"guard"`
		TrueBranch  Statement  `yaml:"true_branch"`
		FalseBranch Statement  `yaml:"false_branch"`
	}{"conditional", s.Guard, s.TrueBranch, s.FalseBranch}, nil
}

func (s *While) MarshalYAML() (interface{}, error) {
	return struct {
		Kind  string     `yaml:"kind"`
		Line  int        `yaml:"line"`
		Col   int        `yaml:"column"`
		Guard BooleanExp `yaml:"guard"`
		Body  Statement  `yaml:"body"`
	}{"while", s.Pos.Line, s.Pos.Column, s.Guard, s.Body}, nil
}

func (e *Boolean) MarshalYAML() (interface{}, error) {
	return struct {
		Kind  string `yaml:"kind"`
		Value bool   `yaml:"value"`
	}{"boolean", e.Value}, nil
}

func (e *Not) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string     `yaml:"kind"`
		Exp  BooleanExp `yaml:"exp"`
	}{"not", e.Exp}, nil
}

func (e *And) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string     `yaml:"kind"`
		Lhs  BooleanExp `yaml:"lhs"`
		Rhs  BooleanExp `yaml:"rhs"`
	}{"and", e.Lhs, e.Rhs}, nil
}

func (e *ArithmeticCondition) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string        `yaml:"kind"`
		Op   string        `yaml:"op"`
		Lhs  ArithmeticExp `yaml:"lhs"`
		Rhs  ArithmeticExp `yaml:"rhs"`
	}{"condition", e.Op.String(), e.Lhs, e.Rhs}, nil
}

func (e *Integer) MarshalYAML() (interface{}, error) {
	return struct {
		Kind  string `yaml:"kind"`
		Value int64  `yaml:"value"`
	}{"integer", e.Value}, nil
}

func (e *Variable) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string `yaml:"kind"`
		Name string `yaml:"name"`
	}{"variable", e.Name}, nil
}

func (e *BinaryOperation) MarshalYAML() (interface{}, error) {
	return struct {
		Kind string        `yaml:"kind"`
		Op   string        `yaml:"op"`
		Lhs  ArithmeticExp `yaml:"lhs"`
		Rhs  ArithmeticExp `yaml:"rhs"`
	}{"binary", e.Op.String(), e.Lhs, e.Rhs}, nil
}
