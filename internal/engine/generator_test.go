package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/codelancer/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC)
}

func TestSuggestName(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"Calculate the total price", "calculate"},
		{"Validate user input", "validate"},
		{"Create a user", "create"},
		{"Make a sandwich", "create"},
		{"Get the weather", "get"},
		{"Sum two numbers", DefaultFunctionName},
		{"Create a function that validates an email", "validate"},
		{"Calculate and validate totals", "calculate"},
		{"GET all orders", "get"},
		{"", DefaultFunctionName},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestName(tt.description))
		})
	}
}

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		description string
		expected    models.TemplateKind
	}{
		{"Build a REST endpoint for orders", models.TemplateAPI},
		{"Expose an API", models.TemplateAPI},
		{"Add an endpoint", models.TemplateAPI},
		{"Define a class for users", models.TemplateClass},
		{"Model an object", models.TemplateClass},
		{"Write a unit test for login", models.TemplateTest},
		{"Sum two numbers", models.TemplateFunction},
		{"A class that wraps an API", models.TemplateAPI},
		{"Test the user object", models.TemplateClass},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectTemplate(tt.description))
		})
	}
}

func TestGenerator_Function(t *testing.T) {
	g := NewGeneratorWithClock(fixedClock)

	result, err := g.Generate("Sum two numbers")
	require.NoError(t, err)

	assert.Equal(t, "Sum two numbers", result.Description)
	assert.Equal(t, DefaultFunctionName, result.FunctionName)
	assert.Equal(t, models.TemplateFunction, result.Template)
	assert.Equal(t, fixedClock(), result.Timestamp)
	assert.True(t, strings.HasPrefix(result.GeneratedCode, "def process_data():\n    \"\"\"\n    Sum two numbers\n"))
	assert.Contains(t, result.GeneratedCode, `print(f"Error in process_data: {e}")`)
	assert.True(t, strings.HasSuffix(result.GeneratedCode, "    print(process_data())"))
}

func TestGenerator_IsDeterministic(t *testing.T) {
	g := NewGenerator()
	description := "Create a function that validates an email"

	first, err := g.Generate(description)
	require.NoError(t, err)
	second, err := g.Generate(description)
	require.NoError(t, err)

	assert.Equal(t, "validate", first.FunctionName)
	assert.Equal(t, first.FunctionName, second.FunctionName)
	assert.Equal(t, first.Template, second.Template)
	assert.Equal(t, first.GeneratedCode, second.GeneratedCode)
}

func TestGenerator_API(t *testing.T) {
	g := NewGeneratorWithClock(fixedClock)

	result, err := g.Generate("Build a REST endpoint for orders")
	require.NoError(t, err)

	assert.Equal(t, models.TemplateAPI, result.Template)
	assert.Equal(t, DefaultFunctionName, result.FunctionName)
	assert.Contains(t, result.GeneratedCode, `app = FastAPI(title="Process_data API")`)
	assert.Contains(t, result.GeneratedCode, `return {"message": "Process_data API is running"}`)
	assert.Contains(t, result.GeneratedCode, "@app.post(\"/process_data\")\nasync def process_data_endpoint(request: RequestModel):")
	assert.True(t, strings.HasSuffix(result.GeneratedCode, "    return f\"Processed: {data}\"\n"))
}

func TestGenerator_ClassEmbedsTimestamp(t *testing.T) {
	g := NewGeneratorWithClock(fixedClock)

	result, err := g.Generate("Make an object for users")
	require.NoError(t, err)

	assert.Equal(t, models.TemplateClass, result.Template)
	assert.Equal(t, "create", result.FunctionName)
	assert.True(t, strings.HasPrefix(result.GeneratedCode, "class Create:\n    \"\"\"\n    Make an object for users\n    \"\"\"\n"))
	assert.Contains(t, result.GeneratedCode, `self.created_at = "2024-01-02T03:04:05.000006"`)
	assert.Contains(t, result.GeneratedCode, `obj = Create("test", 42)`)
}

func TestFormatCreatedAt(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"microseconds", time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC), "2024-01-02T03:04:05.000006"},
		{"whole second", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05"},
		{"sub-microsecond only", time.Date(2024, 1, 2, 3, 4, 5, 999, time.UTC), "2024-01-02T03:04:05"},
		{"trailing zeros kept", time.Date(2024, 1, 2, 3, 4, 5, 500000000, time.UTC), "2024-01-02T03:04:05.500000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCreatedAt(tt.at))
		})
	}
}

func TestGenerator_ClassTimestampWholeSecond(t *testing.T) {
	g := NewGeneratorWithClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	})

	result, err := g.Generate("Make an object for users")
	require.NoError(t, err)

	assert.Contains(t, result.GeneratedCode, `self.created_at = "2024-01-02T03:04:05"`)
}

func TestGenerator_Test(t *testing.T) {
	g := NewGeneratorWithClock(fixedClock)

	result, err := g.Generate("Write a unit test for login")
	require.NoError(t, err)

	assert.Equal(t, models.TemplateTest, result.Template)
	assert.Equal(t, "import unittest\n\nclass TestProcess_data(unittest.TestCase):\n    def test_basic(self):\n        self.assertTrue(True)\n\nif __name__ == \"__main__\":\n    unittest.main()", result.GeneratedCode)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Process_data", capitalize("process_data"))
	assert.Equal(t, "Get", capitalize("GET"))
	assert.Equal(t, "", capitalize(""))
}
