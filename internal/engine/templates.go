package engine

import (
	"text/template"

	"github.com/codelancer/api/internal/models"
)

// templateData fills the slots of a code template
type templateData struct {
	Name        string
	ClassName   string
	Description string
	CreatedAt   string
}

const functionTemplate = `def {{.Name}}():
    """
    {{.Description}}

    Returns:
        Any: result of the operation
    """
    try:
        # TODO: Implement this function
        result = "Function implemented successfully"
        return result
    except Exception as e:
        print(f"Error in {{.Name}}: {e}")
        raise

if __name__ == "__main__":
    print({{.Name}}())`

const apiTemplate = `from fastapi import FastAPI, HTTPException
from pydantic import BaseModel
from typing import Optional

app = FastAPI(title="{{.ClassName}} API")

class RequestModel(BaseModel):
    data: str
    options: Optional[dict] = None

class ResponseModel(BaseModel):
    result: str
    success: bool
    message: Optional[str] = None

@app.get("/")
async def root():
    return {"message": "{{.ClassName}} API is running"}

@app.post("/{{.Name}}")
async def {{.Name}}_endpoint(request: RequestModel):
    try:
        result = process_request(request.data, request.options)
        return ResponseModel(result=result, success=True, message="OK")
    except Exception as e:
        raise HTTPException(status_code=500, detail=str(e))

def process_request(data: str, options: Optional[dict] = None) -> str:
    return f"Processed: {data}"
`

const classTemplate = `class {{.ClassName}}:
    """
    {{.Description}}
    """
    def __init__(self, name: str, value: any = None):
        self.name = name
        self.value = value
        self.created_at = "{{.CreatedAt}}"

    def process(self):
        return f"Processed {self.name} with value {self.value}"

    def validate(self):
        if not self.name:
            raise ValueError("Name cannot be empty")
        return True

if __name__ == "__main__":
    obj = {{.ClassName}}("test", 42)
    print(obj.process())`

const testTemplate = `import unittest

class Test{{.ClassName}}(unittest.TestCase):
    def test_basic(self):
        self.assertTrue(True)

if __name__ == "__main__":
    unittest.main()`

var codeTemplates = map[models.TemplateKind]*template.Template{
	models.TemplateFunction: template.Must(template.New("function").Parse(functionTemplate)),
	models.TemplateAPI:      template.Must(template.New("api").Parse(apiTemplate)),
	models.TemplateClass:    template.Must(template.New("class").Parse(classTemplate)),
	models.TemplateTest:     template.Must(template.New("test").Parse(testTemplate)),
}
