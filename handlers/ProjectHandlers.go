package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"backend/models"

	"github.com/gin-gonic/gin"
)

// CreateProject creates a new production project for a producer.
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body models.Project true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/project_create [post]
func CreateProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := c.ShouldBindJSON(&project); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON input", "details": err.Error()})
			return
		}

		project.CreatedAt = time.Now()
		project.UpdatedAt = time.Now()
		if project.Status == "" {
			project.Status = "Active"
		}

		query := `
			INSERT INTO project (name, description, producer_id, event_date, status, budget, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING project_id
		`
		err := db.QueryRow(query,
			project.Name,
			project.Description,
			project.ProducerID,
			project.EventDate,
			project.Status,
			project.Budget,
			project.CreatedAt,
			project.UpdatedAt,
		).Scan(&project.ProjectID)
		if err != nil {
			log.Printf("Error inserting project: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert project", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

// FetchAllProjects lists the projects of one producer.
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param producer_id query int false "Producer ID"
// @Success 200 {array} models.Project
// @Failure 500 {object} models.ErrorResponse
// @Router /api/projects [get]
func FetchAllProjects(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `
			SELECT project_id, name, description, producer_id, event_date, status, budget, created_at, updated_at
			FROM project
			ORDER BY created_at DESC
		`
		args := []interface{}{}
		if producerID := c.Query("producer_id"); producerID != "" {
			id, err := strconv.Atoi(producerID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid producer_id"})
				return
			}
			query = `
				SELECT project_id, name, description, producer_id, event_date, status, budget, created_at, updated_at
				FROM project
				WHERE producer_id = $1
				ORDER BY created_at DESC
			`
			args = append(args, id)
		}

		rows, err := db.Query(query, args...)
		if err != nil {
			log.Printf("Error fetching projects: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects", "details": err.Error()})
			return
		}
		defer rows.Close()

		projects := []models.Project{}
		for rows.Next() {
			var project models.Project
			var eventDate sql.NullTime
			err := rows.Scan(&project.ProjectID, &project.Name, &project.Description, &project.ProducerID,
				&eventDate, &project.Status, &project.Budget, &project.CreatedAt, &project.UpdatedAt)
			if err != nil {
				log.Printf("Error scanning project row: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process project data"})
				return
			}
			if eventDate.Valid {
				project.EventDate = &eventDate.Time
			}
			projects = append(projects, project)
		}

		c.JSON(http.StatusOK, projects)
	}
}

// FetchProject returns one project by id.
// @Summary Fetch project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} models.ErrorResponse
// @Router /api/project_fetch/{id} [get]
func FetchProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			return
		}

		var project models.Project
		var eventDate sql.NullTime
		query := `
			SELECT project_id, name, description, producer_id, event_date, status, budget, created_at, updated_at
			FROM project WHERE project_id = $1
		`
		err = db.QueryRow(query, id).Scan(&project.ProjectID, &project.Name, &project.Description,
			&project.ProducerID, &eventDate, &project.Status, &project.Budget, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project", "details": err.Error()})
			return
		}
		if eventDate.Valid {
			project.EventDate = &eventDate.Time
		}

		c.JSON(http.StatusOK, project)
	}
}
