package response

import "github.com/labstack/echo/v4"

// Envelope is the uniform response wrapper for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes an error envelope with the given status code. err may be nil
// when there is no underlying cause worth echoing.
func Fail(c echo.Context, status int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return c.JSON(status, env)
}
