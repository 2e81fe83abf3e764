package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/storeops-dev/shift-availability/backend/internal/domain"
)

const sessionCookieName = "__shift_availability_session"

// isRejection 判断错误是不是业务上的拒绝。
// 拒绝直接把提示信息返回给调用方，其余错误按内部错误处理
func isRejection(err error) bool {
	shiftFullErr := &domain.ShiftFullError{}
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrTooFewDays),
		errors.Is(err, domain.ErrTooManyDays),
		errors.Is(err, domain.ErrShiftNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound):
		return true
	case errors.As(err, &shiftFullErr):
		return true
	}
	return false
}

func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.service.Identify(req.Name)
	if err != nil {
		if isRejection(err) {
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	// 生成会话 token
	expiration := time.Now().Add(time.Duration(h.config.Session.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiration),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Subject:   strconv.FormatInt(employee.ID, 10),
	})
	ss, err := token.SignedString([]byte(h.config.Session.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过 http-only 的 cookie 返回给客户端
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "身份确认成功", employee)
}

func (h *Handler) GetAvailabilityView(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(int64)

	view, err := h.service.GetAvailabilityView(employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			// 会话中的员工已不存在，让客户端重新输入姓名
			h.clearSessionCookie(w)
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次选择数据成功", view)
}

func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtxKey).(int64)

	var req struct {
		ShiftIDs []int64 `json:"shiftIDs" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.service.SubmitAvailability(employeeID, req.ShiftIDs)
	if err != nil {
		if isRejection(err) {
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	// 提交成功后名单已经变化，让缓存失效
	h.invalidateRosterCache(r.Context())

	// 通知协调员有新的提交；提交本身已经落库，通知失败不影响本次请求的结果
	if err := h.publishSubmittedMail(employeeID, shifts); err != nil {
		slog.Error("无法发送提交通知到消息队列", "error", err)
	}

	h.successResponse(w, r, "空闲时间提交成功", shifts)
}

func (h *Handler) publishSubmittedMail(employeeID int64, shifts []*domain.Shift) error {
	employee, err := h.service.GetEmployee(employeeID)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(shifts))
	for _, shift := range shifts {
		labels = append(labels, shift.Label())
	}

	mailMessage := domain.MailMessage{
		Type: "availability_submitted",
		To:   h.config.Notification.CoordinatorEmail,
		Data: domain.AvailabilitySubmittedMailData{
			FullName:    employee.FullName,
			Shifts:      labels,
			SubmittedAt: time.Now().Format("2006-01-02 15:04:05"),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})
}
