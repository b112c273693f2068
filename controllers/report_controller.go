package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"backend/capture"
	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/store"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	intake *services.IntakeService
	store  *store.ReportStore
}

func NewReportController(intake *services.IntakeService, st *store.ReportStore) *ReportController {
	return &ReportController{intake: intake, store: st}
}

type reportJSON struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	CrimeType   string   `json:"crimeType"`
	CrimeDate   string   `json:"crimeDate"`
	CrimeTime   string   `json:"crimeTime"`
	IsAtScene   bool     `json:"isAtScene"`
	WantsUpdate bool     `json:"wantsUpdate"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Media       []string `json:"media"`
	Audio       string   `json:"audio"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Create handles POST /reports. JSON bodies carry media and audio already
// encoded as data URLs; multipart bodies carry raw files that are encoded
// here, in attachment order.
func (rc *ReportController) Create(c *gin.Context) {
	var sub services.Submission

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		s, err := rc.submissionFromMultipart(c)
		if err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		sub = s
	} else {
		var req reportJSON
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, "invalid JSON body")
			return
		}
		sub = services.Submission{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			CrimeType:   req.CrimeType,
			CrimeDate:   req.CrimeDate,
			CrimeTime:   req.CrimeTime,
			IsAtScene:   req.IsAtScene,
			WantsUpdate: req.WantsUpdate,
			Email:       req.Email,
			Phone:       req.Phone,
			Media:       req.Media,
			Audio:       req.Audio,
			Lat:         req.Lat,
			Lng:         req.Lng,
		}
	}

	report, err := rc.intake.Submit(c.Request.Context(), sub)
	if err != nil {
		var ve *services.ValidationError
		var ee *capture.EncodingError
		switch {
		case errors.As(err, &ve):
			resp.ValidationFailed(c, ve.Fields)
		case errors.As(err, &ee):
			resp.ValidationFailed(c, map[string]string{"media": ee.Error()})
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, report)
}

func (rc *ReportController) submissionFromMultipart(c *gin.Context) (services.Submission, error) {
	sub := services.Submission{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		CrimeType:   c.PostForm("crimeType"),
		CrimeDate:   c.PostForm("crimeDate"),
		CrimeTime:   c.PostForm("crimeTime"),
		IsAtScene:   c.PostForm("isAtScene") == "true",
		WantsUpdate: c.PostForm("wantsUpdate") == "true",
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
	}

	if v := c.PostForm("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sub, errors.New("invalid lat")
		}
		sub.Lat = &lat
	}
	if v := c.PostForm("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sub, errors.New("invalid lng")
		}
		sub.Lng = &lng
	}

	form, err := c.MultipartForm()
	if err != nil {
		return sub, errors.New("invalid multipart body")
	}
	for _, fh := range form.File["media"] {
		sub.MediaInputs = append(sub.MediaInputs, fileInput(fh))
	}
	if files := form.File["audio"]; len(files) > 0 {
		encoded, err := capture.EncodeAll(c.Request.Context(), []capture.Input{fileInput(files[0])})
		if err != nil {
			return sub, err
		}
		sub.Audio = encoded[0]
	}
	return sub, nil
}

func fileInput(fh *multipart.FileHeader) capture.Input {
	mime := fh.Header.Get("Content-Type")
	return capture.Input{
		Name: fh.Filename,
		MIME: mime,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// Recent serves the public landing widget: the five newest summaries.
func (rc *ReportController) Recent(c *gin.Context) {
	sorted := store.SortByRecency(rc.store.ListReports())
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	resp.OK(c, store.Summaries(sorted))
}

// MapPoints serves the public crime map projections.
func (rc *ReportController) MapPoints(c *gin.Context) {
	resp.OK(c, store.MapPoints(rc.store.ListReports()))
}

// CrimeTypes serves the fixed grouped taxonomy for the intake form.
func (rc *ReportController) CrimeTypes(c *gin.Context) {
	resp.OK(c, entity.CrimeTypeGroups)
}
