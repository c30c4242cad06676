package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/export"
	exportmocks "github.com/anstrom/portmerge/internal/export/mocks"
	"github.com/anstrom/portmerge/internal/metrics"
	metricsmocks "github.com/anstrom/portmerge/internal/metrics/mocks"
	"github.com/anstrom/portmerge/internal/record"
	"github.com/anstrom/portmerge/internal/risk"
)

type port struct {
	ip      string
	id      int
	service string
}

func scanDocument(ports ...port) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<nmaprun scanner="nmap" args="nmap -sV -oX -" version="7.94">` + "\n")
	for _, p := range ports {
		fmt.Fprintf(&b, `<host><status state="up"/><address addr="%s" addrtype="ipv4"/>`, p.ip)
		fmt.Fprintf(&b, `<ports><port protocol="tcp" portid="%d"><state state="open"/>`, p.id)
		fmt.Fprintf(&b, `<service name="%s"/></port></ports></host>`+"\n", p.service)
	}
	b.WriteString("</nmaprun>\n")
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// captureSink expects exactly one Write and stores the records it receives.
func captureSink(ctrl *gomock.Controller, target string, into *[]record.ScanRecord) *exportmocks.MockSink {
	sink := exportmocks.NewMockSink(ctrl)
	sink.EXPECT().Target().Return(target).AnyTimes()
	sink.EXPECT().Write(gomock.Any()).DoAndReturn(func(records []record.ScanRecord) error {
		*into = append([]record.ScanRecord(nil), records...)
		return nil
	}).Times(1)
	return sink
}

// scenario lays out two scan documents reporting the same RDP port plus an
// inventory row repeating it with different case and whitespace.
func scenario(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "scan1.xml", scanDocument(port{"10.0.0.1", 3389, "ms-wbt-server"}))
	writeFile(t, dir, "scan2.XML", scanDocument(
		port{"10.0.0.1", 3389, "ms-wbt-server"},
		port{"10.0.0.2", 8080, "custom-app"},
	))
	table := writeFile(t, dir, "开放端口.csv", "IP,端口,状态,服务,端口用途\n 10.0.0.1 ,3389,OPEN,MS-WBT-Server ,\n")

	return Options{
		ScanDir:   dir,
		TablePath: table,
		MergedXML: filepath.Join(dir, "out.xml"),
	}
}

func TestDiscoverDocuments(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", "")
	b := writeFile(t, dir, "B.XML", "")
	writeFile(t, dir, "notes.txt", "")
	out := writeFile(t, dir, "out.xml", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xml"), 0o750))

	paths, err := DiscoverDocuments(dir, "", out)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, paths)

	paths, err = DiscoverDocuments(dir, "*.XML")
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	_, err = DiscoverDocuments(dir, "[")
	assert.True(t, errors.IsCode(err, errors.CodeValidation))

	_, err = DiscoverDocuments(filepath.Join(dir, "absent"), "")
	assert.True(t, errors.IsCode(err, errors.CodeSourceMissing))
}

func TestRunEndToEnd(t *testing.T) {
	opts := scenario(t)
	ctrl := gomock.NewController(t)

	var written []record.ScanRecord
	sink := captureSink(ctrl, "captured", &written)

	result, err := New(opts, nil).Run(sink)
	require.NoError(t, err)

	expected := []record.ScanRecord{
		{IP: "10.0.0.1", PortProtocol: "3389/tcp", State: "open", Service: "ms-wbt-server", NecessityFlag: risk.Warning},
		{IP: "10.0.0.2", PortProtocol: "8080/tcp", State: "open", Service: "custom-app"},
	}
	assert.Equal(t, expected, result.Records)
	assert.Equal(t, expected, written)

	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Documents, 2)
	assert.Equal(t, 1, result.TableRecords)
	assert.Equal(t, 3, result.ScanRecords)
	assert.Equal(t, 2, result.Removed)
	assert.Equal(t, 1, result.Flagged)
	assert.Equal(t, "strict (2 rows removed)", result.Mode)
	assert.Equal(t, []string{"captured"}, result.Targets)
	assert.NoError(t, result.TableErr)

	assert.Equal(t, opts.MergedXML, result.MergedXML)
	assert.FileExists(t, opts.MergedXML)
	assert.Equal(t, 3, result.Merge.Hosts)
}

func TestRunIsIdempotent(t *testing.T) {
	opts := scenario(t)
	p := New(opts, nil)

	first, err := p.Run()
	require.NoError(t, err)
	second, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Documents, second.Documents)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunNoData(t *testing.T) {
	ctrl := gomock.NewController(t)

	// Any call to the sink fails the test.
	sink := exportmocks.NewMockSink(ctrl)

	m := metricsmocks.NewMockRunMetrics(ctrl)
	m.EXPECT().IncrementDocuments(gomock.Any(), 0).Times(3)
	m.EXPECT().IncrementRecordsExtracted(gomock.Any(), 0).Times(2)
	m.EXPECT().IncrementInvalidAddresses(gomock.Any(), 0).Times(2)
	m.EXPECT().RecordRunDuration(metrics.RunNoData, gomock.Any()).Times(1)

	opts := Options{
		ScanDir:   t.TempDir(),
		TablePath: filepath.Join(t.TempDir(), "开放端口.xlsx"),
		MergedXML: filepath.Join(t.TempDir(), "out.xml"),
	}

	result, err := New(opts, nil, WithMetrics(m)).Run(sink)
	assert.True(t, errors.IsCode(err, errors.CodeNoData))
	assert.True(t, errors.IsFatal(err))
	assert.Empty(t, result.Records)
	assert.True(t, errors.IsCode(result.TableErr, errors.CodeSourceMissing))
	assert.NoFileExists(t, opts.MergedXML)
}

func TestRunBaseDocumentFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", "<nmaprun><host>")
	writeFile(t, dir, "b.xml", scanDocument(port{"10.0.0.9", 22, "ssh"}))
	table := writeFile(t, dir, "ports.csv", "IP,端口/协议,服务\n10.0.0.5,6379,redis\n")

	opts := Options{ScanDir: dir, TablePath: table, MergedXML: filepath.Join(dir, "out.xml")}
	result, err := New(opts, nil).Run()
	require.NoError(t, err)

	assert.True(t, result.Merge.BaseFailed())
	assert.Len(t, result.Merge.Skipped, 1)
	assert.Empty(t, result.MergedXML)
	assert.NoFileExists(t, opts.MergedXML)

	expected := []record.ScanRecord{
		{IP: "10.0.0.5", PortProtocol: "6379/tcp", Service: "redis", NecessityFlag: risk.Warning},
	}
	assert.Equal(t, expected, result.Records)
}

func TestRunScanOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scan.xml", scanDocument(port{"10.0.0.3", 8080, "custom-app"}))

	opts := Options{ScanDir: dir, ExtraPorts: []int{8080}}
	result, err := New(opts, nil).Run()
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, risk.Warning, result.Records[0].NecessityFlag)
	assert.Empty(t, result.MergedXML)
	assert.NoError(t, result.TableErr)
}

func TestRunSinkFailure(t *testing.T) {
	opts := scenario(t)
	ctrl := gomock.NewController(t)

	failing := exportmocks.NewMockSink(ctrl)
	failing.EXPECT().Target().Return("broken.xlsx").AnyTimes()
	failing.EXPECT().Write(gomock.Any()).Return(fmt.Errorf("disk full"))

	var written []record.ScanRecord
	working := captureSink(ctrl, "console", &written)

	m := metricsmocks.NewMockRunMetrics(ctrl)
	m.EXPECT().IncrementDocuments(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().IncrementRecordsExtracted(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().IncrementInvalidAddresses(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().IncrementDuplicatesRemoved(2)
	m.EXPECT().IncrementRecordsFlagged(1)
	m.EXPECT().IncrementRecordsWritten("console", 2)
	m.EXPECT().RecordRunDuration(metrics.RunError, gomock.Any())

	result, err := New(opts, nil, WithMetrics(m)).Run([]export.Sink{failing, working}...)
	assert.True(t, errors.IsCode(err, errors.CodeOutputWrite))
	assert.Equal(t, []string{"console"}, result.Targets)
	assert.Len(t, written, 2)
}
