package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/geuresti/Hack-The-Woodz-Backend/credential"
	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/geuresti/Hack-The-Woodz-Backend/util"
	"github.com/geuresti/Hack-The-Woodz-Backend/util/middleware"
	"github.com/geuresti/Hack-The-Woodz-Backend/validation"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"
)

type AccountHandler struct {
	acRepo domain.AccountRepository
	prRepo domain.ProjectRepository
	creds  *credential.Service
	router *mux.Router
}

func (ac *AccountHandler) UsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	accounts, err := ac.acRepo.GetAll(ctx)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteJson(w, accounts)
}

func (ac *AccountHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	jsonBody := r.Context().Value("json")

	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteError(w, http.StatusBadRequest, "bad json")
		return
	}
	payload, verr := validation.AccountCreate(body)
	if verr != nil {
		util.WriteJsonStatus(w, verr.Status, verr)
		return
	}

	hash, err := ac.creds.HashPassword(payload.Password)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}

	account := &domain.Account{
		Username:     payload.Username,
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		JobTitle:     payload.JobTitle,
		PasswordHash: hash,
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	err = ac.acRepo.Insert(ctx, account)
	if err != nil {
		log.Println(err)
		if strings.HasPrefix(err.Error(), "ERROR: duplicate key") {
			util.WriteError(w, http.StatusConflict, "username or email already taken")
		} else {
			util.WriteStatus(w, http.StatusBadRequest)
		}
		return
	}
	util.WriteStatusMessage(w, http.StatusOK, "account created")
}

func (ac *AccountHandler) LogInHandler(w http.ResponseWriter, r *http.Request) {
	jsonBody := r.Context().Value("json")

	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteError(w, http.StatusBadRequest, "bad json")
		return
	}
	payload, verr := validation.Login(body)
	if verr != nil {
		util.WriteJsonStatus(w, verr.Status, verr)
		return
	}

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	token, account, err := ac.creds.LogIn(ctx, payload.Username, payload.Password)
	if err != nil {
		if err == credential.ErrInvalidCredentials {
			util.WriteError(w, http.StatusBadRequest, err.Error())
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}
	ret := map[string]string{
		"token":        token,
		"display_name": account.FirstName,
		"job_title":    account.JobTitle,
	}
	util.WriteJson(w, ret)
}

func (ac *AccountHandler) LogOutHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	if err := ac.creds.LogOut(ctx, authUser.Token); err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteStatusMessage(w, http.StatusOK, "logged out")
}

func (ac *AccountHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := util.GetUrlQueryParam(r, "username")
	if username == "" {
		util.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	account, err := ac.acRepo.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			util.WriteError(w, http.StatusNotFound, "user not found")
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}

	ctx, cancel = util.GetContextWithTimeout(r.Context())
	defer cancel()
	projects, err := ac.prRepo.GetProjectsByAccountID(ctx, account.ID)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteJson(w, projects)
}

func NewAccountHandler(r *mux.Router, authMiddleware mux.MiddlewareFunc, acRepo domain.AccountRepository, prRepo domain.ProjectRepository, creds *credential.Service) *AccountHandler {
	a := &AccountHandler{
		acRepo: acRepo,
		prRepo: prRepo,
		creds:  creds,
		router: r.NewRoute().Subrouter(),
	}

	a.router.HandleFunc("/users/", a.UsersHandler).Methods("GET")
	a.router.HandleFunc("/profile/", a.ProfileHandler).Methods("GET")

	subrouter := a.router.NewRoute().Subrouter()
	subrouter.Use(middleware.JsonBodyMiddleware)
	subrouter.HandleFunc("/create_account/", a.CreateAccountHandler).Methods("POST")
	subrouter.HandleFunc("/log_in/", a.LogInHandler).Methods("POST")

	authed := a.router.NewRoute().Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/log_out/", a.LogOutHandler).Methods("DELETE")
	return a
}
