package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes. Registry calls Register once, after the
// global middleware is in place.
type Module interface {
	Register(rg *gin.RouterGroup)
}
