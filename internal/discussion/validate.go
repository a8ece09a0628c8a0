package discussion

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

type NewQuestion struct {
	Title    string  `json:"title" validate:"required,notblank,max=255"`
	Content  string  `json:"content" validate:"required,notblank,max=5000"`
	Author   string  `json:"author" validate:"required,notblank,max=100"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=50"`
}

// QuestionUpdate holds the editable question fields; nil means unchanged.
type QuestionUpdate struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Content  *string `json:"content,omitempty" validate:"omitempty,notblank,max=5000"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=50"`
}

type NewAnswer struct {
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,notblank,max=2000"`
	Author     string `json:"author" validate:"required,notblank,max=100"`
}

type NewReply struct {
	AnswerID int64  `json:"answer_id" validate:"required,gt=0"`
	Content  string `json:"content" validate:"required,notblank,max=2000"`
	Author   string `json:"author" validate:"required,notblank,max=100"`
}

type NewMessage struct {
	Title    string `json:"title" validate:"required,notblank,max=255"`
	Content  string `json:"content" validate:"required,notblank,max=5000"`
	Author   string `json:"author" validate:"required,notblank,max=100"`
	Receiver string `json:"receiver" validate:"required,notblank,max=100,nefield=Author"`
}

type contentEdit struct {
	Content string `validate:"required,notblank,max=2000"`
}

type searchKeyword struct {
	Keyword string `validate:"required,notblank,max=100"`
}

func checkStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return invalid("%s", err.Error())
	}
	return nil
}

// ValidateKeyword rejects blank or oversized search keywords.
func ValidateKeyword(keyword string) error {
	return checkStruct(searchKeyword{Keyword: strings.TrimSpace(keyword)})
}
