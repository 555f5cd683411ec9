package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ALT-F4-LLC/hours/internal/filter"
	"github.com/ALT-F4-LLC/hours/internal/model"
	"github.com/ALT-F4-LLC/hours/internal/output"
	"github.com/ALT-F4-LLC/hours/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// fail aborts with the error envelope. An empty code is derived from err.
func fail(c *gin.Context, err error, code output.ErrorCode) {
	if code == "" {
		code = output.CodeForError(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(output.HTTPStatusForError(code), output.ErrorBody(err, code))
}

func window(c *gin.Context) (filter.Window, bool) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		fail(c, errors.New("query parameters from and to are required"), output.ErrValidation)
		return filter.Window{}, false
	}
	w, err := filter.ParseWindow(from, to)
	if err != nil {
		fail(c, err, output.ErrValidation)
		return filter.Window{}, false
	}
	return w, true
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, fmt.Errorf("multipart field file: %w", err), output.ErrValidation)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, err, output.ErrGeneral)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, err, output.ErrGeneral)
		return
	}

	snap, err := s.svc.Publisher().ImportBytes(c.Request.Context(), fh.Filename, data)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.String(http.StatusOK, "Imported %d timelogs", len(snap.TimeLogs()))
}

func (s *Server) hasData(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Publisher().HasData())
}

func (s *Server) dataTimestamp(c *gin.Context) {
	snap, err := s.svc.Publisher().Current()
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, snap.ImportedAt().UTC().Format(time.RFC3339Nano))
}

func (s *Server) hierarchy(c *gin.Context) {
	w, ok := window(c)
	if !ok {
		return
	}
	dims, err := model.ParseDimensions(c.QueryArray("elements"))
	if err != nil {
		fail(c, err, output.ErrValidation)
		return
	}
	root, err := s.svc.Hierarchy(w, dims)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, root)
}

func (s *Server) hierarchyComponents(c *gin.Context) {
	w, ok := window(c)
	if !ok {
		return
	}
	comps, err := s.svc.AllComponents(w)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, comps)
}

func (s *Server) users(c *gin.Context) {
	users, err := s.svc.Users()
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) timesheet(c *gin.Context) {
	w, ok := window(c)
	if !ok {
		return
	}
	sheets, err := s.svc.Timesheet(w)
	if err != nil {
		fail(c, err, "")
		return
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, sheets); err != nil {
		fail(c, err, output.ErrGeneral)
		return
	}
	name := fmt.Sprintf("timesheet_%s_%s.xlsx",
		w.From.UTC().Format(filter.DateLayout), w.To.UTC().Format(filter.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) userCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		fail(c, fmt.Errorf("invalid year %q", c.Param("year")), output.ErrValidation)
		return
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		fail(c, fmt.Errorf("invalid user id %q", c.Param("userId")), output.ErrValidation)
		return
	}
	days, err := s.svc.Calendar(year, userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, days)
}

func (s *Server) stats(c *gin.Context) {
	w, ok := window(c)
	if !ok {
		return
	}
	st, err := s.svc.Stats(w)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, st)
}
