package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterValue_UnmarshalTyping(t *testing.T) {
	tests := []struct {
		input string
		want  ParameterValue
	}{
		{`10`, Int(10)},
		{`-3`, Int(-3)},
		{`10.0`, Float(10)},
		{`0.001`, Float(0.001)},
		{`1e-4`, Float(0.0001)},
		{`2E3`, Float(2000)},
		{`"auto"`, String("auto")},
		{`true`, Bool(true)},
		{`false`, Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var v ParameterValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParameterValue_UnmarshalRejects(t *testing.T) {
	for _, input := range []string{`null`, `[1]`, `{"a":1}`, `99999999999999999999`} {
		t.Run(input, func(t *testing.T) {
			var v ParameterValue
			assert.Error(t, v.UnmarshalJSON([]byte(input)))
		})
	}
}

func TestParameters_NullValueRejected(t *testing.T) {
	var p Parameters
	assert.Error(t, json.Unmarshal([]byte(`{"epochs": null}`), &p))
}

func TestParameterValue_MarshalKeepsFloats(t *testing.T) {
	p := Parameters{
		"learning_rate": Float(10),
		"epochs":        Int(10),
		"tiny":          Float(1e-7),
		"name":          String("x"),
		"shuffle":       Bool(true),
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"learning_rate":10.0,"epochs":10,"tiny":1e-07,"name":"x","shuffle":true}`, string(b))
	assert.Contains(t, string(b), `"learning_rate":10.0`)

	var back Parameters
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p, back)
}

func TestParameterValue_MarshalInvalid(t *testing.T) {
	_, err := json.Marshal(ParameterValue{})
	assert.Error(t, err)

	_, err = json.Marshal(Float(math.NaN()))
	assert.Error(t, err)
}

func TestParameterValue_Accessors(t *testing.T) {
	f, ok := Float(0.5).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)

	_, ok = Int(5).AsFloat()
	assert.False(t, ok, "an int is not a float")

	_, ok = ParameterValue{}.AsInt()
	assert.False(t, ok)
	assert.Equal(t, ParameterType(""), ParameterValue{}.Type())
}

func TestParameterValue_String(t *testing.T) {
	assert.Equal(t, "10.0", Float(10).String())
	assert.Equal(t, "10", Int(10).String())
	assert.Equal(t, `"a b"`, String("a b").String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "<invalid>", ParameterValue{}.String())
}

func TestNewParameterSchema(t *testing.T) {
	schema, err := NewParameterSchema(
		RequiredParam("epochs", ParameterInt, "Epochs"),
		OptionalParam("learning_rate", ParameterFloat, "Learning rate"),
	)
	require.NoError(t, err)
	require.Len(t, schema, 2)

	d, ok := schema.Lookup("learning_rate")
	assert.True(t, ok)
	assert.True(t, d.Optional)
	assert.Equal(t, ParameterFloat, d.Type)

	_, ok = schema.Lookup("missing")
	assert.False(t, ok)

	empty, err := NewParameterSchema()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewParameterSchema_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		params []ParameterDescriptor
	}{
		{"duplicate", []ParameterDescriptor{
			OptionalParam("epochs", ParameterInt, ""),
			RequiredParam("epochs", ParameterInt, ""),
		}},
		{"empty name", []ParameterDescriptor{OptionalParam("", ParameterInt, "")}},
		{"bad type", []ParameterDescriptor{OptionalParam("epochs", "integer", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParameterSchema(tt.params...)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() {
		MustParameterSchema(OptionalParam("x", "decimal", ""))
	})
}

func TestFinetune_Started(t *testing.T) {
	assert.False(t, (&Finetune{}).Started())
	assert.True(t, (&Finetune{ProviderID: "ftjob-1"}).Started())
}

func TestDatasetSplit_ParentTask(t *testing.T) {
	task := &Task{ID: "t"}
	ds := NewDatasetSplit(nil, "s", "S", map[string][]Example{"train": nil})
	assert.Nil(t, ds.ParentTask())

	ds.SetParentTask(task)
	assert.Same(t, task, ds.ParentTask())
	assert.Equal(t, "s", ds.DatasetID())
	assert.Contains(t, ds.SplitContents(), "train")
}
