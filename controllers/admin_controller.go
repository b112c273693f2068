package controllers

import (
	"strconv"
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/store"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	store         *store.ReportStore
	notifications *services.NotificationService
}

func NewAdminController(st *store.ReportStore, n *services.NotificationService) *AdminController {
	return &AdminController{store: st, notifications: n}
}

// Reports lists reports for the triage table, newest first, with the same
// filters the dashboard offers: free-text search, status, type, day.
func (ac *AdminController) Reports(c *gin.Context) {
	reports := ac.store.ListReports()

	if q := c.Query("q"); q != "" {
		reports = store.Search(reports, q)
	}
	if s := c.Query("status"); s != "" && s != "all" {
		reports = store.FilterByStatus(reports, entity.ReportStatus(s))
	}
	if t := c.Query("type"); t != "" && t != "all" {
		reports = store.FilterByType(reports, t)
	}
	if d := c.Query("date"); d != "" {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			resp.BadRequest(c, "invalid date filter, want YYYY-MM-DD")
			return
		}
		reports = store.FilterByDate(reports, day)
	}

	reports = store.SortByRecency(reports)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	total := len(reports)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	resp.OK(c, gin.H{
		"total":   total,
		"page":    page,
		"limit":   limit,
		"reports": reports[start:end],
	})
}

func (ac *AdminController) ReportDetail(c *gin.Context) {
	report, ok := ac.store.Get(c.Param("id"))
	if !ok {
		resp.NotFound(c, "report not found")
		return
	}
	resp.OK(c, report)
}

// UpdateStatus moves a report through the triage workflow.
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status entity.ReportStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid body")
		return
	}
	if !req.Status.Valid() {
		resp.BadRequest(c, "invalid status: "+string(req.Status))
		return
	}

	updated, found := ac.store.UpdateReport(c.Param("id"), store.Patch{Status: &req.Status})
	if !found {
		resp.NotFound(c, "report not found")
		return
	}
	resp.OK(c, updated)
}

// Update applies administrative annotations without touching the
// citizen-entered fields.
func (ac *AdminController) Update(c *gin.Context) {
	var req struct {
		AdminNotes  *string             `json:"adminNotes"`
		ContactInfo *entity.ContactInfo `json:"contactInfo"`
		IsAtScene   *bool               `json:"isAtScene"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid body")
		return
	}

	patch := store.Patch{
		AdminNotes:  req.AdminNotes,
		ContactInfo: req.ContactInfo,
		IsAtScene:   req.IsAtScene,
	}
	updated, found := ac.store.UpdateReport(c.Param("id"), patch)
	if !found {
		resp.NotFound(c, "report not found")
		return
	}
	resp.OK(c, updated)
}

// Dashboard returns the aggregate numbers behind the admin charts.
func (ac *AdminController) Dashboard(c *gin.Context) {
	reports := ac.store.ListReports()
	now := time.Now()

	todayCount := len(store.FilterByDate(reports, now))

	resp.OK(c, gin.H{
		"total":    len(reports),
		"today":    todayCount,
		"byStatus": store.CountByStatus(reports),
		"byType":   store.CountByType(reports),
		"byRegion": store.CountByRegion(reports),
		"trend":    store.MonthlyTrend(reports, 6, now),
	})
}

func (ac *AdminController) MapPoints(c *gin.Context) {
	resp.OK(c, store.MapPoints(ac.store.ListReports()))
}

func (ac *AdminController) Notifications(c *gin.Context) {
	resp.OK(c, gin.H{
		"unread":        ac.notifications.UnreadCount(),
		"notifications": ac.notifications.Recent(5),
	})
}

func (ac *AdminController) MarkNotificationRead(c *gin.Context) {
	if !ac.notifications.MarkRead(c.Param("id")) {
		resp.NotFound(c, "notification not found")
		return
	}
	resp.OK(c, gin.H{"unread": ac.notifications.UnreadCount()})
}

func (ac *AdminController) MarkAllNotificationsRead(c *gin.Context) {
	ac.notifications.MarkAllRead()
	resp.OK(c, gin.H{"unread": 0})
}
