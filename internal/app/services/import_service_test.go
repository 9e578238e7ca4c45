package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mikelitos05/asistencias/internal/app/models"
)

type importFixture struct {
	store   *memStore
	service ImportExportService
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	store := newMemStore()
	schedules := memSchedules{store}
	ledger := NewCapacityLedger(schedules, zerolog.Nop())
	catalog := NewCatalogService(memPrograms{store}, schedules, memParks{store}, ledger, zerolog.Nop())
	service := NewImportExportService(
		memServers{store}, schedules, memParks{store}, memPrograms{store}, memPeriods{store},
		catalog, 50, zerolog.Nop(),
	)
	return &importFixture{store: store, service: service}
}

// rosterRow builds a row in the workbook layout the importer consumes.
func rosterRow(name, programPark, status, email, period string) []string {
	row := make([]string, 27)
	row[1] = "2025-02-01"  // enrollment date
	row[2] = "2025-02-03"  // start date
	row[3] = "2025-08-01"  // end date
	row[4] = status        // ACTIVO / INACTIVO
	row[6] = name          // full name
	row[7] = programPark   // "PROGRAM/ABBR"
	row[8] = "L-V"         // days
	row[9] = "15:00-19:00" // hours
	row[10] = "Si"         // badge
	row[11] = "12"         // vest number
	row[12] = email        // email
	row[13] = "Maria Lopez 5512345678"
	row[14] = "55 8765-4321"
	row[15] = "O+"
	row[16] = "Penicilina"
	row[17] = "21" // age
	row[18] = "UANL"
	row[20] = "Arquitectura"
	row[21] = "480" // total hours
	row[22] = period
	row[23] = "SS"
	row[24] = "2025-02-02" // induction date
	row[25] = "OF-123"
	row[26] = "OF-456"
	return row
}

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]string, 27)
	for i := range header {
		header[i] = "col"
	}
	all := append([][]string{header}, rows...)
	for rowIdx, row := range all {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportSocialServers(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	f.store.addProgram("Tu Parque Consentido", park.ID)

	workbook := buildWorkbook(t, [][]string{
		rosterRow("Ana Morales", "Tu Parque Consentido/PAA", "ACTIVO", "ana@example.com", "SEP-MAR 2025"),
		rosterRow("Luis Garza", "Tu Parque Consentido/PAA", "INACTIVO", "luis@example.com", "SEP-MAR 2025"),
	})

	report, err := f.service.ImportSocialServers(ctx, workbook)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Imported)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Errors)

	ana, err := memServers{f.store}.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana Morales", ana.Name)
	assert.Equal(t, park.ID, ana.ParkID)
	assert.Equal(t, models.StatusActive, ana.Status)
	assert.Equal(t, models.ServerTypeSocialServer, ana.ServerType)
	assert.Equal(t, models.BloodType("O_POSITIVE"), ana.BloodType)
	assert.True(t, ana.Badge)
	assert.Equal(t, 12, ana.Vest)
	assert.Equal(t, "Maria Lopez", ana.TutorName)
	assert.Equal(t, "5512345678", ana.TutorPhone)
	assert.Equal(t, "5587654321", ana.CellPhone)
	assert.Equal(t, 480, ana.TotalHoursRequired)
	require.NotNil(t, ana.BirthDate)

	// A schedule was created on the fly with the default capacity; Ana is
	// ACTIVE so she took a seat, Luis is INACTIVE so he did not.
	require.NotNil(t, ana.ScheduleID)
	schedule := f.store.schedule(*ana.ScheduleID)
	assert.Equal(t, 50, schedule.Capacity)
	assert.Equal(t, 49, schedule.CurrentCapacity)
	assert.Equal(t, "L-V", schedule.Days)
	assert.Equal(t, "15:00", schedule.StartTime)
	assert.Equal(t, "19:00", schedule.EndTime)

	luis, err := memServers{f.store}.GetByEmail(ctx, "luis@example.com")
	require.NoError(t, err)
	require.NotNil(t, luis.ScheduleID)
	assert.Equal(t, *ana.ScheduleID, *luis.ScheduleID)

	// The period label was parsed into a year-spanning period, created once.
	periods, err := memPeriods{f.store}.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "SEP-MAR 2025", periods[0].Name)
	assert.Equal(t, time.September, periods[0].StartDate.Month())
	assert.Equal(t, 2025, periods[0].StartDate.Year())
	assert.Equal(t, time.March, periods[0].EndDate.Month())
	assert.Equal(t, 2026, periods[0].EndDate.Year())
}

func TestImportSocialServersRowFailuresAreIsolated(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	f.store.addProgram("Tu Parque Consentido", park.ID)

	noEmail := rosterRow("Sin Correo", "Tu Parque Consentido/PAA", "ACTIVO", "", "")
	unknownProgram := rosterRow("Otro Programa", "Programa Fantasma/PAA", "ACTIVO", "otro@example.com", "")
	good := rosterRow("Ana Morales", "Tu Parque Consentido/PAA", "ACTIVO", "ana@example.com", "")

	report, err := f.service.ImportSocialServers(ctx, buildWorkbook(t, [][]string{noEmail, unknownProgram, good}))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors[0], "row 2")
	assert.Contains(t, report.Errors[0], "email")
	assert.Contains(t, report.Errors[1], "row 3")
	assert.Contains(t, report.Errors[1], "Programa Fantasma")

	_, err = memServers{f.store}.GetByEmail(ctx, "ana@example.com")
	assert.NoError(t, err)
}

func TestImportSocialServersDuplicateEmailRow(t *testing.T) {
	f := newImportFixture(t)
	park := f.store.addPark("Parque Aventura", "PAA")
	f.store.addProgram("Tu Parque Consentido", park.ID)

	row := rosterRow("Ana Morales", "Tu Parque Consentido/PAA", "ACTIVO", "ana@example.com", "")
	report, err := f.service.ImportSocialServers(context.Background(), buildWorkbook(t, [][]string{row, row}))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Failed)
}

func TestImportSocialServersRejectsGarbage(t *testing.T) {
	f := newImportFixture(t)

	_, err := f.service.ImportSocialServers(context.Background(), strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestExportSocialServers(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()
	park := f.store.addPark("Parque Aventura", "PAA")
	program := f.store.addProgram("Tu Parque Consentido", park.ID)
	association := f.store.associationOf(program.ID, park.ID)
	schedule := f.store.addSchedule(association.ID, "L-V", "15:00", "19:00", 20)

	birth := time.Date(2004, time.March, 10, 0, 0, 0, 0, time.UTC)
	server := &models.SocialServer{
		Email:          "ana@example.com",
		Name:           "Ana Morales",
		ParkID:         park.ID,
		ScheduleID:     &schedule.ID,
		School:         "UANL",
		Status:         models.StatusActive,
		EnrollmentDate: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		Badge:          true,
		Vest:           -1,
		BloodType:      models.BloodType("O_POSITIVE"),
		BirthDate:      &birth,
		ServerType:     models.ServerTypeSocialServer,
	}
	require.NoError(t, memServers{f.store}.CreateWithSeat(ctx, server))

	workbook, err := f.service.ExportSocialServers(ctx)
	require.NoError(t, err)
	defer workbook.Close()

	const sheet = "Social Servers"
	header, err := workbook.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Folio", header)

	rows, err := workbook.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "ana@example.com", cell(row, 1))
	assert.Equal(t, "Ana Morales", cell(row, 2))
	assert.Equal(t, "Parque Aventura", cell(row, 4))
	assert.Equal(t, "15:00 - 19:00", cell(row, 6))
	assert.Equal(t, "2025-02-01", cell(row, 8))
	assert.Equal(t, "ACTIVE", cell(row, 11))
	assert.Equal(t, "Si", cell(row, 12))
	assert.Equal(t, "No se dio chaleco", cell(row, 13))
	assert.Equal(t, "O_POSITIVE", cell(row, 16))
}
