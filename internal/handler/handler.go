package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/storeops-dev/shift-availability/backend/internal/config"
	"github.com/storeops-dev/shift-availability/backend/internal/service"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	service     *service.Service
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, svc *service.Service, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		service:     svc,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 输入姓名即可确认身份，无需注册
	h.Mux.Post("/identify", h.Identify)

	// 名单对所有人公开
	h.Mux.Get("/roster", h.GetRoster)

	// 以下 API 必须在确认身份后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.session)
		r.Get("/availability", h.GetAvailabilityView)
		r.Post("/availability", h.SubmitAvailability)
	})
}
