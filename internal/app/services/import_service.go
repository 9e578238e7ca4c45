package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/mikelitos05/asistencias/internal/app/models"
	"github.com/mikelitos05/asistencias/internal/app/models/dto"
	"github.com/mikelitos05/asistencias/internal/app/repositories"
	"github.com/mikelitos05/asistencias/internal/pkg/apperrors"
)

// spanish month abbreviations used in period labels like "SEP-MAR 2025"
var spanishMonths = map[string]time.Month{
	"ENE": time.January, "FEB": time.February, "MAR": time.March,
	"ABR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AGO": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DIC": time.December,
}

var exportHeaders = []string{
	"Folio", "Correo", "Nombre", "Edad", "Parque", "Celular", "Horario",
	"Horas totales requeridas", "Fecha de inscripcion", "Fecha de inicio", "Fecha de termino",
	"Estatus", "Credencial", "Chaleco", "Nombre contacto emergencia",
	"Numero de contacto emergencia", "Tipo de sangre", "Alergias", "Escuela",
	"Carrera", "Periodo", "Tipo de servidor social", "Fecha de induccion",
	"No. oficio de aceptacion", "No. Oficio terminado",
}

// ImportExportService moves the social server roster in and out of xlsx
// workbooks.
type ImportExportService interface {
	ImportSocialServers(ctx context.Context, r io.Reader) (*dto.ImportReport, error)
	ExportSocialServers(ctx context.Context) (*excelize.File, error)
}

// importExportServiceImpl implements ImportExportService
type importExportServiceImpl struct {
	servers         SocialServerStore
	schedules       ScheduleStore
	parks           ParkStore
	programs        ProgramStore
	periods         PeriodStore
	catalog         CatalogService
	defaultCapacity int
	logger          zerolog.Logger
}

// NewImportExportService creates a new ImportExportService. defaultCapacity
// is the capacity given to schedules created on the fly for imported rows.
func NewImportExportService(
	servers SocialServerStore,
	schedules ScheduleStore,
	parks ParkStore,
	programs ProgramStore,
	periods PeriodStore,
	catalog CatalogService,
	defaultCapacity int,
	logger zerolog.Logger,
) ImportExportService {
	return &importExportServiceImpl{
		servers:         servers,
		schedules:       schedules,
		parks:           parks,
		programs:        programs,
		periods:         periods,
		catalog:         catalog,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// ImportSocialServers reads a roster workbook and enrolls one social server
// per data row. A failing row is logged and counted but never aborts its
// siblings. Schedules referenced by a row are resolved idempotently,
// created with the default capacity when missing.
func (s *importExportServiceImpl) ImportSocialServers(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError("file is not a valid xlsx workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("error reading workbook: %w", err)
	}

	report := &dto.ImportReport{}
	for i, row := range rows {
		if i == 0 || rowEmpty(row) { // header
			continue
		}

		report.Processed++
		if err := s.importRow(ctx, row); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			s.logger.Warn().Err(err).Int("row", i+1).Msg("Import row failed")
			continue
		}
		report.Imported++
	}

	s.logger.Info().
		Int("processed", report.Processed).
		Int("imported", report.Imported).
		Int("failed", report.Failed).
		Msg("Social server import finished")

	return report, nil
}

func (s *importExportServiceImpl) importRow(ctx context.Context, row []string) error {
	email := strings.TrimSpace(cell(row, 12))
	if email == "" {
		return errors.New("missing email")
	}
	name := strings.TrimSpace(cell(row, 6))
	if name == "" {
		return errors.New("missing name")
	}

	programName, parkAbbreviation := splitProgramPark(cell(row, 7))
	park, err := s.resolvePark(ctx, parkAbbreviation)
	if err != nil {
		return err
	}
	program, err := s.programs.GetByName(ctx, programName)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return fmt.Errorf("program %q not found", programName)
		}
		return err
	}

	days := strings.TrimSpace(cell(row, 8))
	startTime, endTime := splitHours(cell(row, 9))
	schedule, err := s.catalog.ResolveScheduleForAssociation(ctx, program.ID, park.ID, days, startTime, endTime, s.defaultCapacity)
	if err != nil {
		return err
	}

	status := models.StatusInactive
	switch strings.ToUpper(strings.TrimSpace(cell(row, 4))) {
	case "ACTIVO", "ACTIVE":
		status = models.StatusActive
	}

	tutorName, tutorPhone := splitEmergencyContact(cell(row, 13))

	period, err := s.resolvePeriod(ctx, strings.TrimSpace(cell(row, 22)))
	if err != nil {
		return err
	}
	var periodID *int64
	if period != nil {
		periodID = &period.ID
	}

	serverType := models.ServerTypeSocialServer
	if strings.EqualFold(strings.TrimSpace(cell(row, 23)), "PP") {
		serverType = models.ServerTypeSocialIntern
	}

	enrollmentDate := time.Now()
	if d := parseFlexibleDate(cell(row, 1)); d != nil {
		enrollmentDate = *d
	}

	var birthDate *time.Time
	if age, err := strconv.Atoi(strings.TrimSpace(cell(row, 17))); err == nil && age > 0 {
		d := time.Now().AddDate(-age, 0, 0)
		birthDate = &d
	}

	scheduleID := schedule.ID
	server := &models.SocialServer{
		Email:                email,
		Name:                 name,
		ParkID:               park.ID,
		ScheduleID:           &scheduleID,
		School:               strings.TrimSpace(cell(row, 18)),
		TotalHoursRequired:   parseInt(cell(row, 21)),
		EnrollmentDate:       enrollmentDate,
		StartDate:            parseFlexibleDate(cell(row, 2)),
		EndDate:              parseFlexibleDate(cell(row, 3)),
		Status:               status,
		PhotoPath:            strings.TrimSpace(cell(row, 5)),
		Badge:                strings.EqualFold(strings.TrimSpace(cell(row, 10)), "Si"),
		Vest:                 parseVest(cell(row, 11)),
		TutorName:            tutorName,
		TutorPhone:           tutorPhone,
		CellPhone:            strings.NewReplacer(" ", "", "-", "").Replace(cell(row, 14)),
		BloodType:            parseBloodType(cell(row, 15)),
		Allergy:              strings.TrimSpace(cell(row, 16)),
		BirthDate:            birthDate,
		Major:                strings.TrimSpace(cell(row, 20)),
		PeriodID:             periodID,
		ServerType:           serverType,
		GeneralInductionDate: parseFlexibleDate(cell(row, 24)),
		AcceptanceLetterID:   strings.TrimSpace(cell(row, 25)),
		CompletionLetterID:   strings.TrimSpace(cell(row, 26)),
	}

	return s.servers.CreateWithSeat(ctx, server)
}

// ExportSocialServers builds the roster workbook in the same layout the
// import consumes.
func (s *importExportServiceImpl) ExportSocialServers(ctx context.Context) (*excelize.File, error) {
	servers, err := s.servers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing social servers: %w", err)
	}

	parkNames := map[int64]string{}
	parks, err := s.parks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing parks: %w", err)
	}
	for _, park := range parks {
		parkNames[park.ID] = park.ParkName
	}

	periodNames := map[int64]string{}
	periods, err := s.periods.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing periods: %w", err)
	}
	for _, period := range periods {
		periodNames[period.ID] = period.Name
	}

	scheduleSlots := map[int64]string{}

	f := excelize.NewFile()
	const sheetName = "Social Servers"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellName, header)
	}

	for rowIdx, server := range servers {
		values := []any{
			server.ID,
			server.Email,
			server.Name,
			ageOf(server.BirthDate),
			parkNames[server.ParkID],
			server.CellPhone,
			s.scheduleSlot(ctx, scheduleSlots, server.ScheduleID),
			server.TotalHoursRequired,
			server.EnrollmentDate.Format("2006-01-02"),
			formatDate(server.StartDate),
			formatDate(server.EndDate),
			string(server.Status),
			boolToSpanish(server.Badge),
			vestLabel(server.Vest),
			server.TutorName,
			server.TutorPhone,
			string(server.BloodType),
			server.Allergy,
			server.School,
			server.Major,
			periodName(periodNames, server.PeriodID),
			string(server.ServerType),
			formatDate(server.GeneralInductionDate),
			server.AcceptanceLetterID,
			server.CompletionLetterID,
		}
		for col, value := range values {
			cellName, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheetName, cellName, value)
		}
	}

	return f, nil
}

func (s *importExportServiceImpl) resolvePark(ctx context.Context, abbreviation string) (*models.Park, error) {
	if abbreviation != "" {
		park, err := s.parks.GetByAbbreviation(ctx, abbreviation)
		if err != nil {
			if errors.Is(err, repositories.ErrParkNotFound) {
				return nil, fmt.Errorf("park with abbreviation %q not found", abbreviation)
			}
			return nil, err
		}
		return park, nil
	}

	parks, err := s.parks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(parks) == 0 {
		return nil, errors.New("no parks exist")
	}
	return parks[0], nil
}

// resolvePeriod parses a label like "SEP-MAR 2025" into a period, reusing
// an existing one with the same date range.
func (s *importExportServiceImpl) resolvePeriod(ctx context.Context, label string) (*models.Period, error) {
	if label == "" {
		return nil, nil
	}

	parts := strings.Fields(label)
	if len(parts) < 2 {
		return nil, nil
	}
	months := strings.Split(parts[0], "-")
	if len(months) != 2 {
		return nil, nil
	}

	startMonth, okStart := spanishMonths[strings.ToUpper(months[0])]
	endMonth, okEnd := spanishMonths[strings.ToUpper(months[1])]
	year, err := strconv.Atoi(parts[1])
	if !okStart || !okEnd || err != nil {
		return nil, nil
	}

	startDate := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	endYear := year
	if startMonth > endMonth {
		endYear++
	}
	endDate := time.Date(endYear, endMonth, 1, 0, 0, 0, 0, time.UTC)

	existing, err := s.periods.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, period := range existing {
		if period.StartDate.Equal(startDate) && period.EndDate.Equal(endDate) {
			return period, nil
		}
	}

	period := &models.Period{Name: label, StartDate: startDate, EndDate: endDate}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *importExportServiceImpl) scheduleSlot(ctx context.Context, cache map[int64]string, scheduleID *int64) string {
	if scheduleID == nil {
		return ""
	}
	if slot, ok := cache[*scheduleID]; ok {
		return slot
	}

	schedule, err := s.schedules.GetByID(ctx, *scheduleID)
	if err != nil {
		return ""
	}
	slot := schedule.StartTime + " - " + schedule.EndTime
	cache[*scheduleID] = slot
	return slot
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

func rowEmpty(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// splitProgramPark parses "TU PARQUE CONSENTIDO/PAA" into program name and
// park abbreviation.
func splitProgramPark(value string) (string, string) {
	if name, abbr, found := strings.Cut(value, "/"); found {
		return strings.TrimSpace(name), strings.TrimSpace(abbr)
	}
	return strings.TrimSpace(value), ""
}

// splitHours parses "15:00-19:00"; unparseable input falls back to the
// 09:00-13:00 slot.
func splitHours(value string) (string, string) {
	if start, end, found := strings.Cut(value, "-"); found {
		start = strings.TrimSpace(start)
		end = strings.TrimSpace(end)
		if start != "" && end != "" {
			return start, end
		}
	}
	return "09:00", "13:00"
}

// splitEmergencyContact splits "Maria Lopez 5512345678" at the first digit.
func splitEmergencyContact(value string) (string, string) {
	value = strings.TrimSpace(value)
	for i, r := range value {
		if unicode.IsDigit(r) {
			return strings.TrimSpace(value[:i]), strings.TrimSpace(value[i:])
		}
	}
	return value, ""
}

func parseVest(value string) int {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(strings.ToLower(value), "no") {
		return -1
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
	if digits == "" {
		return -1
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n
}

func parseBloodType(value string) models.BloodType {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return models.BloodTypeUnknown
	}

	positive := strings.Contains(v, "+")
	var group string
	switch {
	case strings.Contains(v, "AB"):
		group = "AB"
	case strings.Contains(v, "A"):
		group = "A"
	case strings.Contains(v, "B"):
		group = "B"
	case strings.Contains(v, "O"):
		group = "O"
	default:
		return models.BloodTypeUnknown
	}

	if !positive && !strings.Contains(v, "-") {
		return models.BloodTypeUnknown
	}
	sign := "NEGATIVE"
	if positive {
		sign = "POSITIVE"
	}
	return models.BloodType(group + "_" + sign)
}

var importDateLayouts = []string{"2006-01-02", "01-02-06", "02/01/2006", "1/2/06"}

func parseFlexibleDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

func ageOf(birthDate *time.Time) any {
	if birthDate == nil {
		return ""
	}
	years := time.Now().Year() - birthDate.Year()
	if time.Now().YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func boolToSpanish(b bool) string {
	if b {
		return "Si"
	}
	return "No"
}

func vestLabel(vest int) any {
	if vest == -1 {
		return "No se dio chaleco"
	}
	return vest
}

func periodName(names map[int64]string, periodID *int64) string {
	if periodID == nil {
		return ""
	}
	return names[*periodID]
}
