package form

import "net/url"

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
}

var loginMessages = messages{
	"username": {"required": "Username is required"},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
}

// ParseLogin reads a LoginForm. The password is taken verbatim.
func ParseLogin(v url.Values) LoginForm {
	return LoginForm{
		Username: field(v, "username"),
		Password: v.Get("password"),
	}
}

// Validate checks the form.
func (f LoginForm) Validate() FieldErrors {
	return check(f, loginMessages)
}
