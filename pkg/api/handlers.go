package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/ssargent/vsvdb/pkg/library"
)

const maxRequestBody = 64 << 10

// Server holds the API server state
type Server struct {
	codec   *codec.RecordCodec
	library PayloadLibrary
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server. lib may be nil, in which case the
// payload routes answer 503.
func NewServer(lib PayloadLibrary, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		codec:   codec.NewRecordCodec(),
		library: lib,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req HexRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.recordCodec("decode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fs, err := s.codec.DecodeHex(req.Hex)
	if err != nil {
		s.recordCodec("decode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rep, err := s.codec.Describe(fs)
	if err != nil {
		s.recordCodec("decode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.recordCodec("decode", true, start)
	sendSuccess(w, rep)
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EncodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.recordCodec("encode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fs, notes, err := BuildFieldSet(&req)
	if err != nil {
		s.recordCodec("encode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := s.codec.Describe(fs)
	if err != nil {
		s.recordCodec("encode", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.recordCodec("encode", true, start)
	sendSuccess(w, EncodeResponse{Hex: rep.Hex, Report: rep, Notes: notes})
}

// BuildFieldSet applies an encode request. Map keys are visited in sorted
// order so the first reported error is stable. notes lists every luminance
// that had to be approximated.
func BuildFieldSet(req *EncodeRequest) (*codec.FieldSet, []string, error) {
	fs := codec.NewFieldSet()
	if req.Base != "" {
		base, err := codec.NewRecordCodec().DecodeHex(req.Base)
		if err != nil {
			return nil, nil, fmt.Errorf("base: %w", err)
		}
		fs = base
	}

	if req.Preset != "" {
		if err := fs.ApplyPreset(req.Preset); err != nil {
			return nil, nil, err
		}
	}

	for _, key := range sortedKeys(req.Fields) {
		f, err := codec.ParseField(key)
		if err != nil {
			return nil, nil, err
		}
		if err := fs.Set(f, req.Fields[key]); err != nil {
			return nil, nil, err
		}
	}

	for _, key := range sortedKeys(req.Labels) {
		f, err := codec.ParseField(key)
		if err != nil {
			return nil, nil, err
		}
		if err := fs.SetCategorical(f, req.Labels[key]); err != nil {
			return nil, nil, err
		}
	}

	var notes []string
	if req.MinNits != nil {
		if !fs.SetMinLuminanceNits(*req.MinNits) {
			notes = append(notes, approximationNote(codec.MinLuminance, *req.MinNits, fs.MinLuminance))
		}
	}
	if req.MaxNits != nil {
		if !fs.SetMaxLuminanceNits(*req.MaxNits) {
			notes = append(notes, approximationNote(codec.MaxLuminance, *req.MaxNits, fs.MaxLuminance))
		}
	}

	return fs, notes, nil
}

func (s *Server) handleLLDV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req HexRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.recordCodec("lldv", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, changed, err := codec.EnableLLDVHDMI(req.Hex)
	if err != nil {
		s.recordCodec("lldv", false, start)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, _ := codec.ParseHex(req.Hex)
	s.recordCodec("lldv", true, start)
	sendSuccess(w, LLDVResponse{Input: in.String(), Output: out, Changed: changed})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, DescribeFields())
}

// DescribeFields lists the record layout, the categorical labels, the color
// presets and both luminance tables.
func DescribeFields() FieldsResponse {
	resp := FieldsResponse{
		Presets:      codec.Presets(),
		MinLuminance: codec.MinLuminance.Values(),
		MaxLuminance: codec.MaxLuminance.Values(),
	}
	for _, spec := range codec.Layout {
		resp.Fields = append(resp.Fields, FieldInfo{
			Key:    spec.Key,
			Name:   spec.Name,
			Byte:   spec.Byte,
			Width:  spec.Width,
			Max:    spec.Max(),
			Labels: codec.Labels(spec.Field),
		})
	}
	return resp
}

func (s *Server) handleGetPayload(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}
	name := chi.URLParam(r, "name")

	rev, err := s.library.Latest(name)
	s.recordLibrary("get", err)
	if err != nil {
		s.sendLibraryError(w, err)
		return
	}
	s.sendPayload(w, rev)
}

func (s *Server) handlePutPayload(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}
	name := chi.URLParam(r, "name")

	var req HexRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := codec.ParseHex(req.Hex)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rev, err := s.library.Save(name, rec)
	s.recordLibrary("save", err)
	if err != nil {
		s.sendLibraryError(w, err)
		return
	}
	s.logger.Info("payload saved", "name", name, "id", rev.ID.String(), "hex", rev.Hex)
	s.sendPayload(w, rev)
}

func (s *Server) handleDeletePayload(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}
	name := chi.URLParam(r, "name")

	err := s.library.Delete(name)
	s.recordLibrary("delete", err)
	if err != nil {
		s.sendLibraryError(w, err)
		return
	}
	s.logger.Info("payload deleted", "name", name)
	sendSuccess(w, map[string]string{"deleted": name})
}

func (s *Server) handlePayloadHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}
	name := chi.URLParam(r, "name")

	revs, err := s.library.History(name)
	s.recordLibrary("history", err)
	if err != nil {
		s.sendLibraryError(w, err)
		return
	}
	sendSuccess(w, revs)
}

func (s *Server) handleListPayloads(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}

	names, err := s.library.List()
	s.recordLibrary("list", err)
	if err != nil {
		s.sendLibraryError(w, err)
		return
	}
	sendSuccess(w, names)
}

func (s *Server) sendPayload(w http.ResponseWriter, rev *library.Revision) {
	rep, err := s.codec.Describe(s.codec.DecodeRecord(rev.Record))
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, PayloadResponse{Revision: rev, Report: rep})
}

func (s *Server) sendLibraryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, library.ErrInvalidName):
		sendError(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("library operation failed", "error", err)
		sendError(w, "Library operation failed", http.StatusInternalServerError)
	}
}

func (s *Server) requireLibrary(w http.ResponseWriter) bool {
	if s.library == nil {
		sendError(w, "Payload library is not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) recordCodec(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCodecOperation(operation, success, time.Since(start))
	}
}

func (s *Server) recordLibrary(operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordLibraryOperation(operation, err == nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func approximationNote(t *codec.LuminanceTable, want float64, index uint8) string {
	got, _ := t.Nits(index)
	return fmt.Sprintf("%s: %g nits not in table, using %g nits", t.Name(), want, got)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
