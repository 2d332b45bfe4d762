package dto

type DataRemovalForm struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email"`
	Message string `validate:"max=5000"`
}
