package service

import "errors"

// 服务层通用错误
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password does not meet policy")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 车队与模拟相关错误
var (
	ErrDuplicateRouteNo = errors.New("route number already exists")
	ErrDuplicateOrderNo = errors.New("order number already exists")
	ErrRouteInUse       = errors.New("route is referenced by orders")
	ErrRouteNotFound    = errors.New("route not found")
	ErrDriverNotFound   = errors.New("driver not found")

	ErrInvalidDriverName    = errors.New("driver name required")
	ErrInvalidShiftHours    = errors.New("shift hours out of range")
	ErrInvalidPastWeekHours = errors.New("past week hours invalid")
	ErrInvalidTrafficLevel  = errors.New("traffic level invalid")
	ErrInvalidDeliveryTime  = errors.New("delivery time must be HH:MM")
	ErrInvalidRouteValues   = errors.New("route values must be positive")
	ErrInvalidOrderValue    = errors.New("order value must be positive")

	ErrInvalidDriverCount = errors.New("available drivers out of range")
	ErrInvalidStartTime   = errors.New("route start time must be HH:MM")
	ErrInvalidMaxHours    = errors.New("max hours per day out of range")
	ErrSimulationNotFound = errors.New("simulation run not found")
)
