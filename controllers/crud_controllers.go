package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/events"
	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/store"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

// CrudController serves one module's REST surface. All nine modules share
// this implementation; what differs per module lives in the Resource entry.
type CrudController struct {
	DB    *gorm.DB
	Store *store.Store
	Res   Resource
}

func NewCrudController(db *gorm.DB, res Resource) *CrudController {
	return &CrudController{DB: db, Store: store.New(db), Res: res}
}

// List returns all active records in the caller's scope, newest first.
// Optional limit/offset query params keep large areas manageable.
func (cc *CrudController) List(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	dest := cc.Res.NewSlice()
	if err := cc.Store.List(scope, dest, limit, offset); err != nil {
		cc.respondStoreError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" list", dest)
}

func (cc *CrudController) Get(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec := cc.Res.New()
	if err := cc.Store.Get(scope, id, rec); err != nil {
		cc.respondStoreError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" detail", rec)
}

// Create inserts a record into the caller's primary business area. The
// payload never chooses the area. A repeated Idempotency-Key returns the
// row created by the first attempt instead of a duplicate.
func (cc *CrudController) Create(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	rec := cc.Res.New()
	if err := c.ShouldBindJSON(rec); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	replayed, err := cc.Store.Create(scope, rec, c.GetHeader("Idempotency-Key"))
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}

	if replayed {
		utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" already created", rec)
		return
	}

	events.BroadcastRecordChange(events.EventRecordCreated,
		rec.EntityType(), rec.Base().ID, rec.Base().BusinessArea)
	utils.RespondJSON(c, http.StatusCreated, cc.Res.Label+" created", rec)
}

// Update overwrites the record's domain fields. The scoped existence check
// runs first, so an id in another business area is indistinguishable from a
// missing one. Moving the record to an area outside the caller's scope is
// forbidden and leaves the row untouched.
func (cc *CrudController) Update(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing := cc.Res.New()
	if err := cc.Store.Get(scope, id, existing); err != nil {
		cc.respondStoreError(c, err)
		return
	}

	bound := cc.Res.New()
	if err := c.ShouldBindJSON(bound); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	requested := bound.Base().BusinessArea
	if requested != "" && requested != existing.Base().BusinessArea && !inScope(scope, requested) {
		utils.RespondError(c, http.StatusForbidden, store.ErrForbidden)
		return
	}

	bound.Base().CarryOver(existing.Base())
	if err := cc.Store.Update(bound); err != nil {
		cc.respondStoreError(c, err)
		return
	}

	events.BroadcastRecordChange(events.EventRecordUpdated,
		bound.EntityType(), bound.Base().ID, bound.Base().BusinessArea)
	utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" updated", bound)
}

/// Delete soft-deletes: the row keeps its data plus who removed it and when,
// and a deleted history row is appended. There is no undelete.
func (cc *CrudController) Delete(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec := cc.Res.New()
	if err := cc.Store.SoftDelete(scope, id, rec, middlewares.UserIDFrom(c)); err != nil {
		cc.respondStoreError(c, err)
		return
	}

	events.BroadcastRecordChange(events.EventRecordDeleted,
		rec.EntityType(), id, rec.Base().BusinessArea)
	utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" deleted", gin.H{"id": id})
}

// History returns the record's audit trail, oldest first. The trail
// survives soft deletion of the record itself.
func (cc *CrudController) History(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rows, err := cc.Store.History(scope, cc.Res.New().EntityType(), id)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, cc.Res.Label+" history", rows)
}

func (cc *CrudController) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		utils.RespondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, store.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("%s store error: %v", cc.Res.Label, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func recordID(c *gin.Context) (uint, error) {
	idStr := c.Param("id")
	if idStr == "" {
		idStr = c.Query("id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid record id")
	}
	return uint(id), nil
}

func inScope(scope []string, area string) bool {
	for _, a := range scope {
		if a == area {
			return true
		}
	}
	return false
}
