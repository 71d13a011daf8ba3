package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/gin-gonic/gin"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// Fail is the single failure boundary: it converts any raised error into the
// uniform envelope and writes the matching HTTP status.
func Fail(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	msg := apperr.MessageOf(err)

	var ae *apperr.Error
	var cause error
	if errors.As(err, &ae) {
		cause = ae.Cause
	} else {
		cause = err
	}

	c.JSON(status, Err(status, msg, cause))
}

// OK writes a success envelope with HTTP 200.
func OK(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: data, Msg: msg})
}

// Created writes a success envelope with HTTP 201.
func Created(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusCreated, Response{Code: http.StatusCreated, Data: data, Msg: msg})
}
