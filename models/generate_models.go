package models

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the binary. For every table the report lists the
columns that exist in the database but have no field in the matching Go model, e.g.

WRN columns not accounted for in model table=projects columns=["nonprofit"]
INF column mismatch report complete total=1
*/

// All returns one zero value of every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Project{},
		&ProjectSkill{},
		&Application{},
		&UserProfile{},
	}
}

// tableModels maps table names to their model struct.
var tableModels = map[string]interface{}{
	"projects":       Project{},
	"project_skills": ProjectSkill{},
	"applications":   Application{},
	"user_profiles":  UserProfile{},
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GenerateModels migrates the schema and writes gorm/gen query helpers to ./generated.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{Logger: verbose})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, ProjectSkill{}, Application{}, UserProfile{})

	if err := Migrate(db); err != nil {
		return err
	}
	zlog.Info().Msg("database migration completed")

	GenerateColumnMismatchReport(db)

	g.Execute()
	zlog.Info().Str("outPath", "./generated").Msg("model generation complete")
	return nil
}

// ColumnMismatches returns, per table, the database columns that no model field maps to.
// Tables that do not exist yet are left out.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	migrator := db.Migrator()
	report := make(map[string][]string, len(tableModels))
	for tableName, model := range tableModels {
		if !migrator.HasTable(tableName) {
			continue
		}
		columnTypes, err := migrator.ColumnTypes(tableName)
		if err != nil {
			return nil, fmt.Errorf("reading columns of %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}
		report[tableName] = findColumnMismatches(dbColumns, modelColumns(model))
	}
	return report, nil
}

// GenerateColumnMismatchReport logs the result of ColumnMismatches table by table.
func GenerateColumnMismatchReport(db *gorm.DB) {
	report, err := ColumnMismatches(db)
	if err != nil {
		zlog.Error().Err(err).Msg("column mismatch report failed")
		return
	}

	tables := make([]string, 0, len(tableModels))
	for name := range tableModels {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	total := 0
	for _, tableName := range tables {
		mismatches, ok := report[tableName]
		switch {
		case !ok:
			zlog.Info().Str("table", tableName).Msg("table does not exist yet (will be created during migration)")
		case len(mismatches) > 0:
			zlog.Warn().Str("table", tableName).Strs("columns", mismatches).Msg("columns not accounted for in model")
			total += len(mismatches)
		default:
			zlog.Info().Str("table", tableName).Msg("all columns are accounted for in the model")
		}
	}
	zlog.Info().Int("total", total).Msg("column mismatch report complete")
}

// modelColumns lists the column names a model maps, preferring an explicit gorm column
// tag and falling back to the db tag. Relation fields carry neither and are skipped.
func modelColumns(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if name := extractColumnNameFromGormTag(field.Tag.Get("gorm")); name != "" {
			fields = append(fields, name)
			continue
		}
		if name := field.Tag.Get("db"); name != "" && name != "-" {
			fields = append(fields, name)
		}
	}

	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
