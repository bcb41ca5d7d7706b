package server

import (
	"encoding/json"
	"net/http"

	"github.com/KoBe1628/ai-fitness-tracker/internal/engine"
	"github.com/KoBe1628/ai-fitness-tracker/internal/exercise"
	"github.com/KoBe1628/ai-fitness-tracker/internal/pose"
)

func (s *Server) handlePoseFrame(w http.ResponseWriter, r *http.Request) {
	var frame pose.Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result := s.engine.HandleFrame(frame)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFinishSet(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.FinishSet()
	if err != nil {
		s.log.Error("finish set", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSelectExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Exercise string `json:"exercise"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.SelectExercise(req.Exercise); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleSetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.SetDifficulty(exercise.Difficulty(req.Difficulty)); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleStartChallenge(w http.ResponseWriter, r *http.Request) {
	s.engine.StartChallenge()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleExitChallenge(w http.ResponseWriter, r *http.Request) {
	s.engine.ExitChallenge()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleStartRoutine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Steps []engine.RoutineStep `json:"steps"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}
	if err := s.engine.StartRoutine(req.Steps); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleSkipRest(w http.ResponseWriter, r *http.Request) {
	s.engine.SkipRest()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Progress())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("exercise")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	if _, ok := exercise.Lookup(id); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise: " + id})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.History(id))
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, exercise.Profiles())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.feed.Recent())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.engine.Export()
	if err != nil {
		s.log.Error("export", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var doc map[string]string
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.Import(doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
