package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shivtchandra/food-analysis/services"
	"github.com/shivtchandra/food-analysis/utils"

	"github.com/gin-gonic/gin"
)

// ScanController drives a scan from image upload through item editing to
// the confirmed nutrient summary.
type ScanController struct {
	Sessions  *services.SessionStore
	Detector  *services.DetectionService
	OCR       *services.OCRService
	Nutrients *services.NutrientService
	Meals     *services.MealService
	Hub       *services.RealtimeHub
	Push      *services.PushService
}

func NewScanController(
	sessions *services.SessionStore,
	detector *services.DetectionService,
	ocr *services.OCRService,
	nutrients *services.NutrientService,
	meals *services.MealService,
	hub *services.RealtimeHub,
	push *services.PushService,
) *ScanController {
	return &ScanController{
		Sessions:  sessions,
		Detector:  detector,
		OCR:       ocr,
		Nutrients: nutrients,
		Meals:     meals,
		Hub:       hub,
		Push:      push,
	}
}

type StartScanInput struct {
	Image      string                  `json:"image"`
	Detections []services.RawDetection `json:"detections"`
}

// StartScan opens a scan session from either a base64 image (OCR path) or
// pre-built detections (import path).
func (sc *ScanController) StartScan(c *gin.Context) {
	userID := c.GetUint("userID")

	var input StartScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detections := input.Detections
	var imageKey string
	if input.Image != "" {
		lines, err := sc.OCR.DetectLines(c.Request.Context(), input.Image)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "text detection failed"})
			return
		}
		detections = sc.Detector.BuildDetections(lines)

		key, err := utils.UploadScanImage(input.Image, userID)
		if err != nil {
			// the scan still works without the archived original
			log.Printf("scan image upload failed: %v", err)
		} else {
			imageKey = key
		}
	}

	session := sc.Sessions.Create(userID)
	items := session.LoadDetections(detections)

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"items":      items,
		"image_key":  imageKey,
	})
}

func (sc *ScanController) session(c *gin.Context) (*services.ScanSession, bool) {
	session, ok := sc.Sessions.Get(c.Param("id"))
	if !ok || session.UserID != c.GetUint("userID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
		return nil, false
	}
	return session, true
}

func (sc *ScanController) GetItems(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": session.Items()})
}

type AppendDetectionInput struct {
	Detection services.RawDetection `json:"detection"`
}

// AppendItem adds one more detected line to an open session, e.g. a row
// the OCR missed and the user typed in.
func (sc *ScanController) AppendItem(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	var input AppendDetectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := session.AppendDetection(input.Detection)
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (sc *ScanController) UpdateItem(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var upd services.ItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := session.UpdateItem(itemID, upd)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (sc *ScanController) RemoveItem(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := session.RemoveItem(itemID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

// Confirm freezes the session's items, computes nutrients for the
// confirmed lines, reduces the result into the display summary and logs
// the meal. Connected sockets and registered devices are notified.
func (sc *ScanController) Confirm(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}
	userID := c.GetUint("userID")

	lines, err := session.Confirm()
	if err != nil {
		if errors.Is(err, services.ErrEmptySubmission) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no items to confirm"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := sc.Nutrients.Compute(c.Request.Context(), lines)

	raw, _ := json.Marshal(resp)
	summary := services.ReduceNutrientReport(raw)
	session.SetSummary(&summary)

	if _, err := sc.Meals.LogConfirmed(userID, resp, time.Now()); err != nil {
		log.Printf("meal log failed for session %s: %v", session.ID, err)
	}

	sc.Hub.SummaryReady(userID, session.ID)
	if sc.Push != nil {
		go sc.Push.PushSummaryReady(userID, session.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"confirmed": lines,
		"report":    resp,
		"summary":   summaryView(&summary),
	})
}

func (sc *ScanController) GetSummary(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	summary := session.Summary()
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not confirmed yet"})
		return
	}

	c.JSON(http.StatusOK, summaryView(summary))
}

func (sc *ScanController) DeleteScan(c *gin.Context) {
	session, ok := sc.session(c)
	if !ok {
		return
	}

	sc.Sessions.Delete(session.ID)
	c.JSON(http.StatusOK, gin.H{"message": "scan session deleted"})
}

// summaryView applies the display rules: totals rounded for rendering and
// the lacking list capped.
func summaryView(s *services.NutrientSummary) gin.H {
	return gin.H{
		"micronutrient_totals": services.DisplayTotals(s.MicronutrientTotals),
		"percent_dv":           s.PercentDV,
		"top_lacking":          services.CapTopLacking(s.TopLacking),
		"per_item_provenance":  s.PerItemProvenance,
	}
}
