package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conforma_app_echo/internal/models"
	"conforma_app_echo/internal/nav"
)

type EvalHandler struct {
	db    *gorm.DB
	trail *Trail
}

func NewEvalHandler(db *gorm.DB, trail *Trail) *EvalHandler {
	return &EvalHandler{db: db, trail: trail}
}

// ListDatasets renders the dataset overview of the eval workbench
func (h *EvalHandler) ListDatasets(c echo.Context) error {
	var datasets []models.EvalDataset
	if err := h.db.Preload("Samples").Preload("Experiments").Find(&datasets).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch datasets")
	}

	data := newPageData(c, "LLM Evals", "evals",
		h.trail.FromPath(c.Request().URL.Path), datasets)
	return c.Render(http.StatusOK, "datasets.html", data)
}

// CreateDatasetPage renders the create dataset form
func (h *EvalHandler) CreateDatasetPage(c echo.Context) error {
	data := newPageData(c, "New Dataset", "evals",
		h.trail.FromPath(c.Request().URL.Path), nil)
	return c.Render(http.StatusOK, "dataset_form.html", data)
}

// StoreDataset handles the creation of a new dataset
func (h *EvalHandler) StoreDataset(c echo.Context) error {
	dataset := models.EvalDataset{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		TaskType:    c.FormValue("task_type"),
	}
	if dataset.TaskType == "" {
		dataset.TaskType = "qa"
	}

	if err := h.db.Create(&dataset).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create dataset")
	}

	return c.Redirect(http.StatusSeeOther, "/evals/"+strconv.FormatUint(uint64(dataset.ID), 10))
}

// datasetTrail names the numeric dataset segment after the dataset itself.
func (h *EvalHandler) datasetTrail(dataset models.EvalDataset, tail ...nav.Crumb) []nav.Crumb {
	items := []nav.Crumb{
		{Label: h.trail.Defaults.HomeLabel, Path: h.trail.Defaults.HomePath},
		{Label: "LLM Evals", Path: "/evals"},
		{Label: dataset.Name, Path: "/evals/" + strconv.FormatUint(uint64(dataset.ID), 10)},
	}
	return h.trail.FromItems(append(items, tail...)...)
}

// ShowDataset renders the dataset editor with its sample rows
func (h *EvalHandler) ShowDataset(c echo.Context) error {
	id := c.Param("id")

	var dataset models.EvalDataset
	if err := h.db.Preload("Samples").Preload("Experiments").First(&dataset, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Dataset not found")
	}

	data := newPageData(c, dataset.Name, "evals", h.datasetTrail(dataset), dataset)
	return c.Render(http.StatusOK, "dataset_detail.html", data)
}

// UpdateDataset handles metadata edits of a dataset
func (h *EvalHandler) UpdateDataset(c echo.Context) error {
	id := c.Param("id")

	var dataset models.EvalDataset
	if err := h.db.First(&dataset, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Dataset not found")
	}

	dataset.Name = c.FormValue("name")
	dataset.Description = c.FormValue("description")
	if taskType := c.FormValue("task_type"); taskType != "" {
		dataset.TaskType = taskType
	}

	if err := h.db.Save(&dataset).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update dataset")
	}

	return c.Redirect(http.StatusSeeOther, "/evals/"+id)
}

// AddSample appends one sample row to a dataset
func (h *EvalHandler) AddSample(c echo.Context) error {
	id := c.Param("id")

	var dataset models.EvalDataset
	if err := h.db.First(&dataset, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Dataset not found")
	}

	sample := models.EvalSample{
		DatasetID: dataset.ID,
		Input:     c.FormValue("input"),
		Ideal:     c.FormValue("ideal"),
	}
	if err := h.db.Create(&sample).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add sample")
	}

	return c.Redirect(http.StatusSeeOther, "/evals/"+id)
}

// DeleteSample removes one sample row from a dataset
func (h *EvalHandler) DeleteSample(c echo.Context) error {
	id := c.Param("id")
	sampleID := c.Param("sampleId")

	if err := h.db.Where("dataset_id = ?", id).Delete(&models.EvalSample{}, sampleID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete sample")
	}

	return c.Redirect(http.StatusSeeOther, "/evals/"+id)
}

// ShowExperiment renders the experiment detail viewer with per-sample results
func (h *EvalHandler) ShowExperiment(c echo.Context) error {
	id := c.Param("id")
	experimentID := c.Param("experimentId")

	var dataset models.EvalDataset
	if err := h.db.First(&dataset, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Dataset not found")
	}

	var experiment models.EvalExperiment
	if err := h.db.Preload("Results").Preload("Results.Sample").
		Where("dataset_id = ?", dataset.ID).First(&experiment, experimentID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Experiment not found")
	}

	breadcrumbs := h.datasetTrail(dataset,
		nav.Crumb{Label: experiment.Name, Path: c.Request().URL.Path, Tooltip: experiment.ModelName})

	data := newPageData(c, experiment.Name, "evals", breadcrumbs, map[string]interface{}{
		"Dataset":    dataset,
		"Experiment": experiment,
	})
	return c.Render(http.StatusOK, "experiment_detail.html", data)
}
