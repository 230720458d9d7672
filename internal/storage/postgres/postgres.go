package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/eduportal/resources-service/internal/config"
	"github.com/eduportal/resources-service/internal/types"
	"github.com/eduportal/resources-service/internal/types/users"
)

type Postgres struct {
	Db *sql.DB
}

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PGSQL.Host, cfg.PGSQL.Port, cfg.PGSQL.User, cfg.PGSQL.Password, cfg.PGSQL.DBName, cfg.PGSQL.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres database")

	pg := &Postgres{Db: db}
	err = pg.CreateTables()
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pg, nil
}

func (p *Postgres) CreateTables() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'staff' CHECK (role IN ('admin','staff','student')),
			status VARCHAR(50) NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive')),
			last_login TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS courses (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) NOT NULL,
			description TEXT,
			instructor_id INTEGER NOT NULL REFERENCES users(id),
			level VARCHAR(20) NOT NULL CHECK (level IN ('100','200','300','400','500','graduate')),
			semester VARCHAR(20) NOT NULL CHECK (semester IN ('first','second','summer')),
			course_type VARCHAR(20) NOT NULL CHECK (course_type IN ('core','elective')),
			course_program VARCHAR(20) NOT NULL CHECK (course_program IN ('general','ai','networking','control')),
			status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive','archived')),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS resources (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			resource_type VARCHAR(20) NOT NULL CHECK (resource_type IN ('material','video')),
			course_id INTEGER NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
			uploaded_by INTEGER NOT NULL REFERENCES users(id),
			file_path VARCHAR(512) NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			file_size BIGINT NOT NULL,
			file_type VARCHAR(100) NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			downloads INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive','processing')),
			is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS announcements (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			author_id INTEGER NOT NULL REFERENCES users(id),
			target_audience VARCHAR(20) NOT NULL DEFAULT 'all' CHECK (target_audience IN ('all','students','staff')),
			is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			views INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive')),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			type VARCHAR(50) NOT NULL DEFAULT 'info',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
	}

	for _, q := range queries {
		if _, err := p.Db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

// Users

func (p *Postgres) CreateUser(email, password, fullName string) (string, error) {
	var userID int
	query := `
	INSERT INTO users (email, password, full_name)
	VALUES ($1, $2, $3)
	RETURNING id
	`

	err := p.Db.QueryRow(query, email, password, fullName).Scan(&userID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", userID), nil
}

func (p *Postgres) GetUserByEmail(email string) (string, string, error) {
	var userID int
	var hashedPassword string

	// Deactivated accounts cannot log in.
	query := `
	SELECT id, password FROM users WHERE email = $1 AND status = 'active'
	`

	err := p.Db.QueryRow(query, email).Scan(&userID, &hashedPassword)
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("%d", userID), hashedPassword, nil
}

func (p *Postgres) GetUserByID(id string) (users.User, error) {
	var u users.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := p.Db.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		return users.User{}, err
	}

	return u, nil
}

func (p *Postgres) UpdateLastLogin(id string) error {
	_, err := p.Db.Exec(`UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

const userColumns = `id, email, full_name, role, status, COALESCE(last_login, created_at), created_at`

func (p *Postgres) ListUsers() ([]users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := p.Db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []users.User
	for rows.Next() {
		var u users.User
		err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, u)
	}

	return accounts, rows.Err()
}

func (p *Postgres) UpdateUser(id string, patch users.UserPatch) (users.User, error) {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	if len(set) == 0 {
		return users.User{}, errors.New("no fields to update")
	}

	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), len(args))

	var u users.User
	err := p.Db.QueryRow(query, args...).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.Status, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		return users.User{}, err
	}

	return u, nil
}

func (p *Postgres) DeactivateUser(id string) error {
	_, err := p.Db.Exec(`UPDATE users SET status = 'inactive' WHERE id = $1`, id)
	return err
}

// Courses

const courseColumns = `id, name, code, COALESCE(description, ''), instructor_id, level, semester, course_type, course_program, status, created_at, updated_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (types.Course, error) {
	var c types.Course
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.InstructorID,
		&c.Level, &c.Semester, &c.CourseType, &c.CourseProgram, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (p *Postgres) CreateCourse(in types.CourseInput) (types.Course, error) {
	query := `
	INSERT INTO courses (name, code, description, instructor_id, level, semester, course_type, course_program)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
	RETURNING ` + courseColumns

	row := p.Db.QueryRow(query, in.Name, in.Code, in.Description, in.InstructorID,
		in.Level, in.Semester, in.CourseType, in.CourseProgram)

	return scanCourse(row)
}

func (p *Postgres) GetCourseByID(id string) (types.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(p.Db.QueryRow(query, id))
}

func (p *Postgres) ListActiveCourses() ([]types.Course, error) {
	query := `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE status = 'active'
	ORDER BY created_at DESC
	`

	return p.queryCourses(query)
}

func (p *Postgres) ListCoursesByInstructor(instructorID string) ([]types.Course, error) {
	query := `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE instructor_id = $1 AND status = 'active'
	ORDER BY created_at DESC
	`

	return p.queryCourses(query, instructorID)
}

func (p *Postgres) queryCourses(query string, args ...interface{}) ([]types.Course, error) {
	rows, err := p.Db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []types.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (p *Postgres) UpdateCourse(id string, patch types.CoursePatch) (types.Course, error) {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Code != nil {
		add("code", *patch.Code)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Level != nil {
		add("level", *patch.Level)
	}
	if patch.Semester != nil {
		add("semester", *patch.Semester)
	}
	if patch.CourseType != nil {
		add("course_type", *patch.CourseType)
	}
	if patch.CourseProgram != nil {
		add("course_program", *patch.CourseProgram)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	if len(set) == 0 {
		return types.Course{}, errors.New("no fields to update")
	}

	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE courses SET %s WHERE id = $%d RETURNING `+courseColumns,
		strings.Join(set, ", "), len(args))

	return scanCourse(p.Db.QueryRow(query, args...))
}

func (p *Postgres) ArchiveCourse(id string) error {
	_, err := p.Db.Exec(`UPDATE courses SET status = 'archived', updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

// Resources

const resourceColumns = `id, title, COALESCE(description, ''), resource_type, course_id, uploaded_by, file_path, file_name, file_size, file_type, views, downloads, status, is_pinned, created_at, updated_at`

func scanResource(row interface{ Scan(...interface{}) error }) (types.Resource, error) {
	var r types.Resource
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType, &r.CourseID,
		&r.UploadedBy, &r.FilePath, &r.FileName, &r.FileSize, &r.FileType,
		&r.Views, &r.Downloads, &r.Status, &r.IsPinned, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (p *Postgres) CreateResource(in types.ResourceInput) (types.Resource, error) {
	query := `
	INSERT INTO resources (title, description, resource_type, course_id, uploaded_by, file_path, file_name, file_size, file_type)
	VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + resourceColumns

	row := p.Db.QueryRow(query, in.Title, in.Description, in.ResourceType, in.CourseID,
		in.UploadedBy, in.FilePath, in.FileName, in.FileSize, in.FileType)

	return scanResource(row)
}

func (p *Postgres) GetResourceByID(id string) (types.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return scanResource(p.Db.QueryRow(query, id))
}

func (p *Postgres) ListResourcesByCourse(courseID string) ([]types.Resource, error) {
	query := `
	SELECT ` + resourceColumns + `
	FROM resources
	WHERE course_id = $1 AND status = 'active'
	ORDER BY is_pinned DESC, created_at DESC
	`

	rows, err := p.Db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []types.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}

	return resources, rows.Err()
}

// ListResourcesByType returns active resources of one type with the owning
// course's program attached, for the program-grouped browse screens.
func (p *Postgres) ListResourcesByType(resourceType types.ResourceType) ([]types.ProgramResource, error) {
	query := `
	SELECT r.id, r.title, COALESCE(r.description, ''), r.resource_type, r.course_id, r.uploaded_by,
		r.file_path, r.file_name, r.file_size, r.file_type, r.views, r.downloads,
		r.status, r.is_pinned, r.created_at, r.updated_at, c.course_program
	FROM resources r
	JOIN courses c ON r.course_id = c.id
	WHERE r.resource_type = $1 AND r.status = 'active'
	ORDER BY r.created_at DESC
	`

	rows, err := p.Db.Query(query, resourceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []types.ProgramResource
	for rows.Next() {
		var r types.ProgramResource
		err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType, &r.CourseID,
			&r.UploadedBy, &r.FilePath, &r.FileName, &r.FileSize, &r.FileType,
			&r.Views, &r.Downloads, &r.Status, &r.IsPinned, &r.CreatedAt, &r.UpdatedAt,
			&r.CourseProgram)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}

	return resources, rows.Err()
}

// ListResourcesByUploader joins course name and code in a single query to
// avoid a per-row course lookup.
func (p *Postgres) ListResourcesByUploader(uploaderID string) ([]types.UploadedResource, error) {
	query := `
	SELECT r.id, r.title, COALESCE(r.description, ''), r.resource_type, r.course_id, r.uploaded_by,
		r.file_path, r.file_name, r.file_size, r.file_type, r.views, r.downloads,
		r.status, r.is_pinned, r.created_at, r.updated_at, c.name, c.code
	FROM resources r
	JOIN courses c ON r.course_id = c.id
	WHERE r.uploaded_by = $1
	ORDER BY r.created_at DESC
	`

	rows, err := p.Db.Query(query, uploaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []types.UploadedResource
	for rows.Next() {
		var r types.UploadedResource
		err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType, &r.CourseID,
			&r.UploadedBy, &r.FilePath, &r.FileName, &r.FileSize, &r.FileType,
			&r.Views, &r.Downloads, &r.Status, &r.IsPinned, &r.CreatedAt, &r.UpdatedAt,
			&r.CourseName, &r.CourseCode)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}

	return resources, rows.Err()
}

// ListCoursesWithResourceCounts returns an instructor's courses with their
// active resource counts in one query.
func (p *Postgres) ListCoursesWithResourceCounts(instructorID string) ([]types.UploadedCourse, error) {
	query := `
	SELECT c.id, c.name, c.code, COALESCE(c.description, ''), c.instructor_id, c.level, c.semester,
		c.course_type, c.course_program, c.status, c.created_at, c.updated_at,
		COUNT(r.id) FILTER (WHERE r.status = 'active') AS resource_count
	FROM courses c
	LEFT JOIN resources r ON r.course_id = c.id
	WHERE c.instructor_id = $1
	GROUP BY c.id
	ORDER BY c.created_at DESC
	`

	rows, err := p.Db.Query(query, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []types.UploadedCourse
	for rows.Next() {
		var c types.UploadedCourse
		err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.InstructorID,
			&c.Level, &c.Semester, &c.CourseType, &c.CourseProgram, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &c.ResourceCount)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (p *Postgres) SoftDeleteResource(id string) error {
	_, err := p.Db.Exec(`UPDATE resources SET status = 'inactive', updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func (p *Postgres) IncrementResourceViews(id string) error {
	_, err := p.Db.Exec(`UPDATE resources SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (p *Postgres) IncrementResourceDownloads(id string) error {
	_, err := p.Db.Exec(`UPDATE resources SET downloads = downloads + 1 WHERE id = $1`, id)
	return err
}

func (p *Postgres) CountActiveResources(resourceType types.ResourceType) (int, error) {
	var count int
	var err error

	if resourceType == "" {
		err = p.Db.QueryRow(`SELECT COUNT(*) FROM resources WHERE status = 'active'`).Scan(&count)
	} else {
		err = p.Db.QueryRow(`SELECT COUNT(*) FROM resources WHERE status = 'active' AND resource_type = $1`, resourceType).Scan(&count)
	}

	return count, err
}

// Announcements

func (p *Postgres) CreateAnnouncement(authorID string, in types.AnnouncementInput) (types.Announcement, error) {
	var a types.Announcement
	query := `
	INSERT INTO announcements (title, content, author_id, target_audience)
	VALUES ($1, $2, $3, $4)
	RETURNING id, title, content, author_id, target_audience, is_pinned, views, status, created_at, updated_at
	`

	err := p.Db.QueryRow(query, in.Title, in.Content, authorID, in.TargetAudience).Scan(
		&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.TargetAudience,
		&a.IsPinned, &a.Views, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return types.Announcement{}, err
	}

	return a, nil
}

func (p *Postgres) ListActiveAnnouncements() ([]types.Announcement, error) {
	query := `
	SELECT id, title, content, author_id, target_audience, is_pinned, views, status, created_at, updated_at
	FROM announcements
	WHERE status = 'active'
	ORDER BY is_pinned DESC, created_at DESC
	`

	rows, err := p.Db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []types.Announcement
	for rows.Next() {
		var a types.Announcement
		err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.TargetAudience,
			&a.IsPinned, &a.Views, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	return announcements, rows.Err()
}

func (p *Postgres) UpdateAnnouncementStatus(id, status string) error {
	_, err := p.Db.Exec(`UPDATE announcements SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	return err
}

func (p *Postgres) ToggleAnnouncementPin(id string) error {
	_, err := p.Db.Exec(`UPDATE announcements SET is_pinned = NOT is_pinned, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func (p *Postgres) IncrementAnnouncementViews(id string) error {
	_, err := p.Db.Exec(`UPDATE announcements SET views = views + 1 WHERE id = $1`, id)
	return err
}

// Notifications

func (p *Postgres) CreateNotification(userID, title, message, notificationType string) (string, error) {
	var notificationID int
	query := `
	INSERT INTO notifications (user_id, title, message, type)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`

	err := p.Db.QueryRow(query, userID, title, message, notificationType).Scan(&notificationID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", notificationID), nil
}

func (p *Postgres) ListNotificationsForUser(userID string) ([]types.Notification, error) {
	query := `
	SELECT id, user_id, title, message, type, is_read, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := p.Db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []types.Notification
	for rows.Next() {
		var n types.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (p *Postgres) CountUnreadNotifications(userID string) (int, error) {
	var count int
	err := p.Db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	return count, err
}

func (p *Postgres) MarkNotificationRead(id string) error {
	_, err := p.Db.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return err
}

func (p *Postgres) MarkAllNotificationsRead(userID string) error {
	_, err := p.Db.Exec(`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
	return err
}

// Janitor

// AllResourcePaths returns every stored file path, including soft-deleted
// rows. A blob is only an orphan when no row at all references it.
func (p *Postgres) AllResourcePaths() ([]string, error) {
	rows, err := p.Db.Query(`SELECT file_path FROM resources`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}

func (p *Postgres) PurgeInactiveResources(olderThan time.Duration) (int64, error) {
	query := `
	DELETE FROM resources
	WHERE status = 'inactive' AND updated_at < CURRENT_TIMESTAMP - ($1 * INTERVAL '1 second')
	`

	result, err := p.Db.Exec(query, int64(olderThan.Seconds()))
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
