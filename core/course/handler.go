package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		publishedOnly := !claims.IsAdmin(ctx)

		courses, err := List(ctx, db, publishedOnly)
		if err != nil {
			return fmt.Errorf("listing courses: %w", err)
		}

		return web.Respond(ctx, w, courses, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "id")
		if err := validate.CheckID(courseID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed course ID is not valid: %w", err))
		}

		c, err := FetchBundle(ctx, db, courseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching course[%s]: %w", courseID, err)
		}

		if !c.Published && !claims.IsAdmin(ctx) {
			return weberr.NotFound(ErrNotFound)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cn CourseNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		now := time.Now().UTC()
		c := Course{
			ID:            validate.GenerateID(),
			Title:         cn.Title,
			Description:   cn.Description,
			Duration:      cn.Duration,
			Level:         cn.Level,
			Instructor:    cn.Instructor,
			InstructorBio: cn.InstructorBio,
			ImageURL:      cn.ImageURL,
			Price:         cn.Price,
			Published:     cn.Published,
			Featured:      cn.Featured,
			Category:      cn.Category,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := Create(ctx, db, c); err != nil {
			return fmt.Errorf("creating course: %w", err)
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "id")
		if err := validate.CheckID(courseID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed course ID is not valid: %w", err))
		}

		var cu CourseUp
		if err := web.Decode(w, r, &cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		c, err := Fetch(ctx, db, courseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching course[%s]: %w", courseID, err)
		}

		if cu.Title != nil {
			c.Title = *cu.Title
		}
		if cu.Description != nil {
			c.Description = *cu.Description
		}
		if cu.Duration != nil {
			c.Duration = *cu.Duration
		}
		if cu.Level != nil {
			c.Level = *cu.Level
		}
		if cu.Instructor != nil {
			c.Instructor = *cu.Instructor
		}
		if cu.InstructorBio != nil {
			c.InstructorBio = *cu.InstructorBio
		}
		if cu.ImageURL != nil {
			c.ImageURL = *cu.ImageURL
		}
		if cu.Price != nil {
			c.Price = *cu.Price
		}
		if cu.Published != nil {
			c.Published = *cu.Published
		}
		if cu.Featured != nil {
			c.Featured = *cu.Featured
		}
		if cu.Category != nil {
			c.Category = *cu.Category
		}
		c.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, c); err != nil {
			return fmt.Errorf("updating course[%s]: %w", courseID, err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "id")
		if err := validate.CheckID(courseID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed course ID is not valid: %w", err))
		}

		if err := Delete(ctx, db, courseID); err != nil {
			switch {
			case errors.Is(err, ErrHasEnrollments):
				return weberr.Conflict(err)
			case errors.Is(err, ErrNotFound):
				return weberr.NotFound(err)
			}
			return fmt.Errorf("deleting course[%s]: %w", courseID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleCreateModule(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "course_id")
		if err := validate.CheckID(courseID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed course ID is not valid: %w", err))
		}

		var mn ModuleNew
		if err := web.Decode(w, r, &mn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(mn); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		if _, err := Fetch(ctx, db, courseID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching course[%s]: %w", courseID, err)
		}

		now := time.Now().UTC()
		m := Module{
			ID:          validate.GenerateID(),
			CourseID:    courseID,
			Title:       mn.Title,
			Description: mn.Description,
			SortOrder:   mn.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := CreateModule(ctx, db, m); err != nil {
			return fmt.Errorf("creating module: %w", err)
		}

		return web.Respond(ctx, w, m, http.StatusCreated)
	}
}

func HandleUpdateModule(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		moduleID := web.Param(r, "id")
		if err := validate.CheckID(moduleID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed module ID is not valid: %w", err))
		}

		var mu ModuleUp
		if err := web.Decode(w, r, &mu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(mu); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		m, err := FetchModule(ctx, db, moduleID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching module[%s]: %w", moduleID, err)
		}

		if mu.Title != nil {
			m.Title = *mu.Title
		}
		if mu.Description != nil {
			m.Description = *mu.Description
		}
		if mu.SortOrder != nil {
			m.SortOrder = *mu.SortOrder
		}
		m.UpdatedAt = time.Now().UTC()

		if err := UpdateModule(ctx, db, m); err != nil {
			return fmt.Errorf("updating module[%s]: %w", moduleID, err)
		}

		return web.Respond(ctx, w, m, http.StatusOK)
	}
}

func HandleDeleteModule(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		moduleID := web.Param(r, "id")
		if err := validate.CheckID(moduleID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed module ID is not valid: %w", err))
		}

		if err := DeleteModule(ctx, db, moduleID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("deleting module[%s]: %w", moduleID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleCreateLesson(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		moduleID := web.Param(r, "module_id")
		if err := validate.CheckID(moduleID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed module ID is not valid: %w", err))
		}

		var ln LessonNew
		if err := web.Decode(w, r, &ln); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(ln); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		if _, err := FetchModule(ctx, db, moduleID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching module[%s]: %w", moduleID, err)
		}

		now := time.Now().UTC()
		l := Lesson{
			ID:        validate.GenerateID(),
			ModuleID:  moduleID,
			Title:     ln.Title,
			Type:      ln.Type,
			Content:   ln.Content,
			VideoURL:  ln.VideoURL,
			Duration:  ln.Duration,
			SortOrder: ln.SortOrder,
			Preview:   ln.Preview,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := CreateLesson(ctx, db, l); err != nil {
			return fmt.Errorf("creating lesson: %w", err)
		}

		return web.Respond(ctx, w, l, http.StatusCreated)
	}
}

func HandleUpdateLesson(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		lessonID := web.Param(r, "id")
		if err := validate.CheckID(lessonID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed lesson ID is not valid: %w", err))
		}

		var lu LessonUp
		if err := web.Decode(w, r, &lu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(lu); err != nil {
			return weberr.BadRequest(fmt.Errorf("validating data: %w", err))
		}

		l, err := FetchLesson(ctx, db, lessonID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching lesson[%s]: %w", lessonID, err)
		}

		if lu.Title != nil {
			l.Title = *lu.Title
		}
		if lu.Type != nil {
			l.Type = *lu.Type
		}
		if lu.Content != nil {
			l.Content = *lu.Content
		}
		if lu.VideoURL != nil {
			l.VideoURL = *lu.VideoURL
		}
		if lu.Duration != nil {
			l.Duration = *lu.Duration
		}
		if lu.SortOrder != nil {
			l.SortOrder = *lu.SortOrder
		}
		if lu.Preview != nil {
			l.Preview = *lu.Preview
		}
		l.UpdatedAt = time.Now().UTC()

		if err := UpdateLesson(ctx, db, l); err != nil {
			return fmt.Errorf("updating lesson[%s]: %w", lessonID, err)
		}

		return web.Respond(ctx, w, l, http.StatusOK)
	}
}

func HandleDeleteLesson(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		lessonID := web.Param(r, "id")
		if err := validate.CheckID(lessonID); err != nil {
			return weberr.BadRequest(fmt.Errorf("passed lesson ID is not valid: %w", err))
		}

		if err := DeleteLesson(ctx, db, lessonID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("deleting lesson[%s]: %w", lessonID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
