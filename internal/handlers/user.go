package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bounty/internal/api"
	"bounty/internal/middleware"
	"bounty/internal/mock"
	"bounty/internal/types"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	// Лимит на размер аватарки
	MaxUploadSize = 10 << 20
)

type UserHandlers struct {
	Backend *mock.Backend
	Logger  *zap.SugaredLogger
}

func NewUserHandlers(b *mock.Backend, l *zap.SugaredLogger) *UserHandlers {
	return &UserHandlers{
		Backend: b,
		Logger:  l,
	}
}

// Тело запроса в структуру, при ошибке ответ уже отправлен
func (h *UserHandlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.Logger.Infof("%v. More details: %v", ErrBadBody, err)
		SendErrorTo(w, ErrBadBody, http.StatusBadRequest, h.Logger)
		return false
	}
	return true
}

// Пользователь из контекста, его туда кладет middleware.Auth
func (h *UserHandlers) userID(w http.ResponseWriter, r *http.Request) string {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.Logger.Error(ErrNoSession)
		SendErrorTo(w, ErrNoSession, http.StatusUnauthorized, h.Logger)
		return ""
	}
	return id
}

func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginParams
	if !h.decode(w, r, &req) {
		return
	}

	SendEnvelope(w, h.Backend.Login(req), h.Logger)
}

func (h *UserHandlers) SendCode(w http.ResponseWriter, r *http.Request) {
	var req types.SendCodeParams
	if !h.decode(w, r, &req) {
		return
	}

	SendEnvelope(w, h.Backend.SendCode(req), h.Logger)
}

func (h *UserHandlers) Bind(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	var req types.BindParams
	if !h.decode(w, r, &req) {
		return
	}

	SendEnvelope(w, h.Backend.Bind(userID, req), h.Logger)
}

func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	SendEnvelope(w, h.Backend.GetProfile(userID), h.Logger)
}

func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	var req types.UpdateProfileParams
	if !h.decode(w, r, &req) {
		return
	}

	SendEnvelope(w, h.Backend.UpdateProfile(userID, req), h.Logger)
}

func (h *UserHandlers) Recharge(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	var req types.RechargeParams
	if !h.decode(w, r, &req) {
		return
	}

	env := h.Backend.Recharge(userID, req)
	SendEnvelope(w, env, h.Logger)

	if env.OK() {
		h.Logger.Infof("recharged %d for userID - %s -", req.Amount, userID)
	}
}

func (h *UserHandlers) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	var req types.WithdrawParams
	if !h.decode(w, r, &req) {
		return
	}

	env := h.Backend.Withdraw(userID, req)
	SendEnvelope(w, env, h.Logger)

	if env.OK() {
		h.Logger.Infof("withdraw %s submitted for userID - %s -", req.CoinAmount, userID)
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (h *UserHandlers) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(w, r)
	if userID == "" {
		return
	}

	page, err := queryInt(r, "page", api.DefaultPage)
	if err != nil {
		SendErrorTo(w, ErrBadQuery, http.StatusBadRequest, h.Logger)
		return
	}
	pageSize, err := queryInt(r, "pageSize", api.DefaultPageSize)
	if err != nil {
		SendErrorTo(w, ErrBadQuery, http.StatusBadRequest, h.Logger)
		return
	}

	params := types.CoinLogsParams{
		Page:     page,
		PageSize: pageSize,
		Type:     types.CoinLogType(r.URL.Query().Get("type")),
	}
	SendEnvelope(w, h.Backend.GetLogs(userID, params), h.Logger)
}

// Файл никуда не сохраняем: смотрим размер и тип, отдаем ссылку-заглушку
func (h *UserHandlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if h.userID(w, r) == "" {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile(api.UploadFieldName)
	if err != nil {
		h.Logger.Infof("%v. More details: %v", ErrNoFile, err)
		SendErrorTo(w, ErrNoFile, http.StatusBadRequest, h.Logger)
		return
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		h.Logger.Errorf("%v. More details: %v", ErrNoFile, err)
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("avatar received: %s, %d bytes, %s", header.Filename, header.Size, mt.String())
	SendEnvelope(w, h.Backend.UploadImage(header.Size, mt.String()), h.Logger)
}
