package app

import (
	"multicalc/internal/age"
	"multicalc/internal/bmi"
	"multicalc/internal/fx"
)

type fieldKind int

const (
	textField fieldKind = iota
	choiceField
	actionField
)

// field is one row of a form pane.
type field struct {
	Label   string
	Kind    fieldKind
	Value   string
	Choices []string

	hint    func() string // shown after a text field
	changed func()        // called after a choice changes
	run     func()        // action rows
}

// form is the state of the BMI, age and currency panes.
type form struct {
	Fields []*field
	Cur    int
	Result string
	Failed bool
}

func (f *form) current() *field {
	if f.Cur < 0 || f.Cur >= len(f.Fields) {
		return nil
	}
	return f.Fields[f.Cur]
}

func (f *form) move(d int) {
	f.Cur += d
	if f.Cur < 0 {
		f.Cur = 0
	}
	if f.Cur >= len(f.Fields) {
		f.Cur = len(f.Fields) - 1
	}
}

// cycle steps the current choice field by d, wrapping around.
func (f *form) cycle(d int) {
	fl := f.current()
	if fl == nil || fl.Kind != choiceField || len(fl.Choices) == 0 {
		return
	}
	idx := 0
	for i, c := range fl.Choices {
		if c == fl.Value {
			idx = i
			break
		}
	}
	n := len(fl.Choices)
	fl.Value = fl.Choices[((idx+d)%n+n)%n]
	if fl.changed != nil {
		fl.changed()
	}
}

func (f *form) succeed(msg string) {
	f.Result = msg
	f.Failed = false
}

func (f *form) fail(msg string) {
	f.Result = msg
	f.Failed = true
}

func (a *App) newBMIForm() *form {
	f := &form{}
	system := &field{
		Label:   "System",
		Kind:    choiceField,
		Value:   string(bmi.Metric),
		Choices: []string{string(bmi.Metric), string(bmi.Imperial)},
	}
	weight := &field{Label: "Weight", Kind: textField}
	height := &field{Label: "Height", Kind: textField}
	weight.hint = func() string {
		if system.Value == string(bmi.Imperial) {
			return "lb"
		}
		return "kg"
	}
	height.hint = func() string {
		if system.Value == string(bmi.Imperial) {
			return "in"
		}
		return "cm"
	}
	calculate := &field{Label: "Calculate", Kind: actionField, run: func() {
		res, err := bmi.Compute(bmi.System(system.Value), weight.Value, height.Value)
		if err != nil {
			f.fail(bmi.Message(err))
			return
		}
		f.succeed(res.String())
	}}
	reset := &field{Label: "Clear", Kind: actionField, run: func() {
		weight.Value = ""
		height.Value = ""
		f.succeed("")
	}}
	f.Fields = []*field{system, weight, height, calculate, reset}
	return f
}

func (a *App) newAgeForm() *form {
	f := &form{}
	dob := &field{Label: "Born", Kind: textField, hint: func() string { return "dd/mm/yyyy" }}
	calculate := &field{Label: "Calculate", Kind: actionField, run: func() {
		born, err := age.ParseDOB(dob.Value)
		if err != nil {
			f.fail(age.Message(err))
			return
		}
		res, err := age.Between(born, a.clock.Today())
		if err != nil {
			f.fail(age.Message(err))
			return
		}
		f.succeed(res.String())
	}}
	reset := &field{Label: "Clear", Kind: actionField, run: func() {
		dob.Value = ""
		f.succeed("")
	}}
	f.Fields = []*field{dob, calculate, reset}
	return f
}

const noPreset = "None"

func (a *App) newFXForm() *form {
	f := &form{}
	amount := &field{Label: "Amount", Kind: textField}
	from := &field{Label: "From", Kind: choiceField, Value: "USD", Choices: fx.Codes}
	to := &field{Label: "To", Kind: choiceField, Value: "EUR", Choices: fx.Codes}
	rate := &field{Label: "Rate", Kind: textField, hint: func() string { return "optional" }}

	presets := []string{noPreset}
	for _, p := range fx.Presets {
		presets = append(presets, p.String())
	}
	preset := &field{Label: "Preset", Kind: choiceField, Value: noPreset, Choices: presets}
	// choosing a preset selects its pair; the rate follows from the pair
	preset.changed = func() {
		for _, p := range fx.Presets {
			if p.String() == preset.Value {
				from.Value = p.Pair.From.String()
				to.Value = p.Pair.To.String()
				return
			}
		}
	}

	request := func() fx.Request {
		return fx.Request{Amount: amount.Value, From: from.Value, To: to.Value, Rate: rate.Value}
	}
	convert := func(req fx.Request) {
		res, err := fx.Convert(req)
		if err != nil {
			f.fail(fx.Message(err))
			return
		}
		f.succeed(res.String())
	}
	f.Fields = []*field{
		amount, from, to, rate, preset,
		{Label: "Convert", Kind: actionField, run: func() { convert(request()) }},
		{Label: "Swap", Kind: actionField, run: func() {
			req := request().Swap()
			from.Value, to.Value = req.From, req.To
			convert(req)
		}},
	}
	return f
}
