package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Nickname string `json:"nickname"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.emailIndex[strings.ToLower(req.Email)]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	user := s.users[userID]
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = user.ID
	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Role:     user.Role,
		Nickname: user.Nickname,
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Birth    string `json:"birth"`
	Gender   string `json:"gender"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hashing password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(req.Email)
	if _, exists := s.emailIndex[email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	if _, exists := s.nickIndex[req.Nickname]; exists {
		writeError(w, http.StatusConflict, "nickname already taken")
		return
	}

	s.nextUserID++
	user := &userRecord{
		ID:           s.nextUserID,
		Email:        email,
		Nickname:     req.Nickname,
		Role:         "USER",
		PasswordHash: hash,
		Phone:        req.Phone,
		Birth:        req.Birth,
		Gender:       req.Gender,
	}
	s.users[user.ID] = user
	s.emailIndex[email] = user.ID
	s.nickIndex[req.Nickname] = user.ID

	writeJSON(w, http.StatusCreated, user.response())
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email required")
		return
	}
	s.mu.RLock()
	_, exists := s.emailIndex[email]
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleCheckNickname(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	if nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname required")
		return
	}
	s.mu.RLock()
	_, exists := s.nickIndex[nickname]
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handlePhoneRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "phone required")
		return
	}

	code := fmt.Sprintf("%06d", uuid.New().ID()%1000000)
	s.mu.Lock()
	s.phoneCodes[req.Phone] = code
	s.mu.Unlock()

	// A real backend sends an SMS; the reference backend logs the code.
	s.log.Info().Str("phone", req.Phone).Str("code", code).Msg("phone verification code issued")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePhoneVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "code required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for phone, code := range s.phoneCodes {
		if code == req.Code {
			delete(s.phoneCodes, phone)
			writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
			return
		}
	}
	writeError(w, http.StatusBadRequest, "invalid verification code")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()).response())
}

func (s *Server) handleUpdateNickname(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "nickname required")
		return
	}
	user := userFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, exists := s.nickIndex[req.Nickname]; exists && owner != user.ID {
		writeError(w, http.StatusConflict, "nickname already taken")
		return
	}
	delete(s.nickIndex, user.Nickname)
	user.Nickname = req.Nickname
	s.nickIndex[req.Nickname] = user.ID
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	user := userFromContext(r.Context())

	// A wrong current password is a validation failure, not a credential
	// failure: it must not answer 401 on this protected route.
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusBadRequest, "current password does not match")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hashing password")
		return
	}

	s.mu.Lock()
	user.PasswordHash = hash
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateExtraInfo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone  string `json:"phone"`
		Birth  string `json:"birth"`
		Gender string `json:"gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user := userFromContext(r.Context())

	s.mu.Lock()
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Birth != "" {
		user.Birth = req.Birth
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload")
		return
	}

	user := userFromContext(r.Context())
	name := uuid.NewString()
	url := "/public/uploads/" + name

	s.mu.Lock()
	s.uploads[name] = data
	user.ProfileImageURL = url
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleDeleteProfileImage(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	s.mu.Lock()
	if user.ProfileImageURL != "" {
		name := strings.TrimPrefix(user.ProfileImageURL, "/public/uploads/")
		delete(s.uploads, name)
		user.ProfileImageURL = ""
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.RLock()
	data, ok := s.uploads[name]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Write(data)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, user.ID)
	delete(s.emailIndex, user.Email)
	delete(s.nickIndex, user.Nickname)
	for token, id := range s.tokens {
		if id == user.ID {
			delete(s.tokens, token)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
