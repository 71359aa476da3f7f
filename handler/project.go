package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/geuresti/Hack-The-Woodz-Backend/domain"
	"github.com/geuresti/Hack-The-Woodz-Backend/policy"
	"github.com/geuresti/Hack-The-Woodz-Backend/util"
	"github.com/geuresti/Hack-The-Woodz-Backend/util/middleware"
	"github.com/geuresti/Hack-The-Woodz-Backend/validation"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"
)

type ProjectHandler struct {
	prRepo domain.ProjectRepository
	blob   domain.BlobStore
	router *mux.Router
}

func (pr *ProjectHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	if err := policy.Read(); err != nil {
		util.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	projects, err := pr.prRepo.GetAll(ctx)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteJson(w, projects)
}

// resolveFromQuery looks up a project by the id query param when present,
// by exact title otherwise. pgx.ErrNoRows when neither is given.
func (pr *ProjectHandler) resolveFromQuery(ctx context.Context, r *http.Request) (*domain.Project, error) {
	if idParam := util.GetUrlQueryParam(r, "id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			return nil, pgx.ErrNoRows
		}
		return pr.prRepo.GetByID(ctx, id)
	}
	title := util.GetUrlQueryParam(r, "title")
	if title == "" {
		return nil, pgx.ErrNoRows
	}
	return pr.prRepo.GetByTitle(ctx, title)
}

func (pr *ProjectHandler) resolveFromPayload(ctx context.Context, payload *validation.ProjectPayload) (*domain.Project, error) {
	if payload.ID != nil {
		return pr.prRepo.GetByID(ctx, *payload.ID)
	}
	return pr.prRepo.GetByTitle(ctx, *payload.Title)
}

func (pr *ProjectHandler) ViewProjectHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	project, err := pr.resolveFromQuery(ctx, r)
	if err != nil {
		if err == pgx.ErrNoRows {
			util.WriteError(w, http.StatusNotFound, "project not found")
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}
	ret := map[string]interface{}{
		"id":               project.ID,
		"title":            project.Title,
		"long_description": project.LongDescription,
		"contributions":    project.Contributions,
	}
	util.WriteJson(w, ret)
}

func (pr *ProjectHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)
	jsonBody := r.Context().Value("json")

	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteError(w, http.StatusBadRequest, "bad json")
		return
	}
	payload, verr := validation.ProjectCreate(body)
	if verr != nil {
		util.WriteJsonStatus(w, verr.Status, verr)
		return
	}
	if err := policy.Write(authUser.ID); err != nil {
		util.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	_, err := pr.prRepo.GetByTitle(ctx, *payload.Title)
	if err == nil {
		util.WriteError(w, http.StatusConflict, "project with that title already exists")
		return
	}
	if err != pgx.ErrNoRows {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}

	project := &domain.Project{
		AccountID:        authUser.ID,
		Title:            *payload.Title,
		ShortDescription: *payload.ShortDescription,
		LongDescription:  *payload.LongDescription,
		Contributions:    *payload.Contributions,
		Thumbnail:        *payload.Thumbnail,
	}
	ctx, cancel = util.GetContextWithTimeout(r.Context())
	defer cancel()
	err = pr.prRepo.Insert(ctx, project)
	if err != nil {
		log.Println(err)
		if strings.HasPrefix(err.Error(), "ERROR: duplicate key") {
			util.WriteError(w, http.StatusConflict, "project with that title already exists")
		} else {
			util.WriteStatus(w, http.StatusBadRequest)
		}
		return
	}
	util.WriteJsonStatus(w, http.StatusCreated, project)
}

func (pr *ProjectHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)
	jsonBody := r.Context().Value("json")

	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteError(w, http.StatusBadRequest, "bad json")
		return
	}
	payload, verr := validation.ProjectUpdate(body)
	if verr != nil {
		util.WriteJsonStatus(w, verr.Status, verr)
		return
	}

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	project, err := pr.resolveFromPayload(ctx, payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			util.WriteError(w, http.StatusNotFound, "project not found")
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}

	if err := policy.Mutate(authUser.ID, project); err != nil {
		util.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	// Absent fields stay unchanged. Title is only rewritable when the
	// project was resolved by id, since otherwise it was the lookup key.
	if payload.ID != nil && payload.Title != nil && *payload.Title != "" {
		project.Title = *payload.Title
	}
	if payload.ShortDescription != nil {
		project.ShortDescription = *payload.ShortDescription
	}
	if payload.LongDescription != nil {
		project.LongDescription = *payload.LongDescription
	}
	if payload.Contributions != nil {
		project.Contributions = *payload.Contributions
	}
	if payload.Thumbnail != nil {
		project.Thumbnail = *payload.Thumbnail
	}

	ctx, cancel = util.GetContextWithTimeout(r.Context())
	defer cancel()
	err = pr.prRepo.Update(ctx, project)
	if err != nil {
		log.Println(err)
		if strings.HasPrefix(err.Error(), "ERROR: duplicate key") {
			util.WriteError(w, http.StatusConflict, "project with that title already exists")
		} else {
			util.WriteStatus(w, http.StatusBadRequest)
		}
		return
	}
	util.WriteStatusMessage(w, http.StatusAccepted, "project updated")
}

func (pr *ProjectHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)
	jsonBody := r.Context().Value("json")

	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteError(w, http.StatusBadRequest, "bad json")
		return
	}
	payload, verr := validation.ProjectUpdate(body)
	if verr != nil {
		util.WriteJsonStatus(w, verr.Status, verr)
		return
	}

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	project, err := pr.resolveFromPayload(ctx, payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			util.WriteError(w, http.StatusNotFound, "project not found")
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}

	if err := policy.Mutate(authUser.ID, project); err != nil {
		util.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	ctx, cancel = util.GetContextWithTimeout(r.Context())
	defer cancel()
	err = pr.prRepo.Delete(ctx, project)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteStatusMessage(w, http.StatusOK, "project deleted")
}

func (pr *ProjectHandler) DeleteAllProjectsHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)

	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	n, err := pr.prRepo.DeleteByAccountID(ctx, authUser.ID)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteStatusMessage(w, http.StatusOK, fmt.Sprintf("%d projects deleted", n))
}

func (pr *ProjectHandler) fetchMedia(w http.ResponseWriter, r *http.Request, key string) {
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	project, err := pr.resolveFromQuery(ctx, r)
	if err != nil {
		if err == pgx.ErrNoRows {
			util.WriteError(w, http.StatusNotFound, "project not found")
		} else {
			log.Println(err)
			util.WriteInternalServerError(w)
		}
		return
	}
	ctx, cancel = util.GetContextWithTimeout(r.Context())
	defer cancel()
	url, err := pr.blob.SignedGetURL(ctx, project.Thumbnail)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteJson(w, map[string]string{key: url})
}

func (pr *ProjectHandler) GetImageHandler(w http.ResponseWriter, r *http.Request) {
	pr.fetchMedia(w, r, "images")
}

func (pr *ProjectHandler) GetThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	pr.fetchMedia(w, r, "thumbnail")
}

func (pr *ProjectHandler) UploadThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	authUser := r.Context().Value("user").(middleware.AuthUserValue)
	if err := policy.Write(authUser.ID); err != nil {
		util.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	key, url, err := pr.blob.SignedPutURL(ctx)
	if err != nil {
		log.Println(err)
		util.WriteInternalServerError(w)
		return
	}
	util.WriteJson(w, map[string]string{"key": key, "url": url})
}

func NewProjectHandler(r *mux.Router, authMiddleware mux.MiddlewareFunc, prRepo domain.ProjectRepository, blob domain.BlobStore) *ProjectHandler {
	p := &ProjectHandler{
		prRepo: prRepo,
		blob:   blob,
		router: r.NewRoute().Subrouter(),
	}

	p.router.HandleFunc("/projects/", p.ListProjectsHandler).Methods("GET")
	p.router.HandleFunc("/view_project/", p.ViewProjectHandler).Methods("GET")
	p.router.HandleFunc("/get_image/", p.GetImageHandler).Methods("GET")
	p.router.HandleFunc("/get_thumbnail/", p.GetThumbnailHandler).Methods("GET")

	authed := p.router.NewRoute().Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/delete_all_projects/", p.DeleteAllProjectsHandler).Methods("DELETE")
	authed.HandleFunc("/upload_thumbnail/", p.UploadThumbnailHandler).Methods("POST")

	subrouter := authed.NewRoute().Subrouter()
	subrouter.Use(middleware.JsonBodyMiddleware)
	subrouter.HandleFunc("/create/", p.CreateProjectHandler).Methods("POST")
	subrouter.HandleFunc("/update/", p.UpdateProjectHandler).Methods("PATCH")
	subrouter.HandleFunc("/delete_project/", p.DeleteProjectHandler).Methods("DELETE")
	return p
}
