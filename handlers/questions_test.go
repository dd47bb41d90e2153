// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/classengage/auth"
	"github.com/danielhkuo/classengage/models"
	"github.com/danielhkuo/classengage/testutil"
)

// submitQuestion runs POST /sessions/{code}/questions and returns the recorder
func submitQuestion(h *QuestionHandler, code string, headers map[string]string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/sessions/"+code+"/questions", body, headers)
	req.SetPathValue("code", code)
	w := httptest.NewRecorder()
	h.SubmitQuestion(w, req)
	return w
}

func vote(h *QuestionHandler, questionID int64, headers map[string]string) *httptest.ResponseRecorder {
	id := strconv.FormatInt(questionID, 10)
	req := testutil.MakeRequest("POST", "/questions/"+id+"/votes", nil, headers)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Vote(w, req)
	return w
}

func TestSubmitQuestion(t *testing.T) {
	db, sh, qh := setupHandlers(t)
	cfg := testutil.GetTestConfig()

	created := createSession(t, sh, "Algebra", "Ms Lee")
	code := created.Session.Code
	alice := joinSession(t, sh, code, "Alice")
	aliceHeaders := actorHeaders(alice.User.ID, alice.UserToken)

	stranger := testutil.CreateTestUser(t, db, "Stranger")
	strangerHeaders := actorHeaders(stranger, auth.GenerateUserToken(stranger, cfg.UserTokenSalt))

	tests := []struct {
		name           string
		headers        map[string]string
		body           interface{}
		expectedStatus int
	}{
		{"valid question", aliceHeaders, models.SubmitQuestionRequest{Body: "Why?"}, http.StatusCreated},
		{"exactly 280 chars", aliceHeaders, models.SubmitQuestionRequest{Body: strings.Repeat("q", 280)}, http.StatusCreated},
		{"281 chars", aliceHeaders, models.SubmitQuestionRequest{Body: strings.Repeat("q", 281)}, http.StatusBadRequest},
		{"blank body", aliceHeaders, models.SubmitQuestionRequest{Body: "   "}, http.StatusBadRequest},
		{"missing credentials", nil, models.SubmitQuestionRequest{Body: "Why?"}, http.StatusUnauthorized},
		{"token for another user", actorHeaders(stranger, alice.UserToken), models.SubmitQuestionRequest{Body: "Why?"}, http.StatusUnauthorized},
		{"non-participant", strangerHeaders, models.SubmitQuestionRequest{Body: "Why?"}, http.StatusForbidden},
		{"non-participant invalid body", strangerHeaders, models.SubmitQuestionRequest{Body: ""}, http.StatusForbidden},
		{"invalid JSON", aliceHeaders, "oops", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitQuestion(qh, code, tt.headers, tt.body)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var q models.QuestionSummary
				testutil.AssertJSON(t, w, &q)
				if q.Status != models.QuestionPending {
					t.Errorf("Expected pending question, got '%s'", q.Status)
				}
				if q.Likes != 0 {
					t.Errorf("Expected 0 likes, got %d", q.Likes)
				}
				if q.Author == nil || q.Author.DisplayName != "Alice" {
					t.Errorf("Expected author Alice, got %+v", q.Author)
				}
			}
		})
	}
}

func TestSubmitQuestionLimit(t *testing.T) {
	_, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	alice := joinSession(t, sh, created.Session.Code, "Alice")
	headers := actorHeaders(alice.User.ID, alice.UserToken)

	for i := 0; i < models.PendingQuestionLimit; i++ {
		w := submitQuestion(qh, created.Session.Code, headers, models.SubmitQuestionRequest{Body: "Question " + strconv.Itoa(i)})
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w := submitQuestion(qh, created.Session.Code, headers, models.SubmitQuestionRequest{Body: "One more"})
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSubmitQuestionToEndedSession(t *testing.T) {
	_, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	alice := joinSession(t, sh, created.Session.Code, "Alice")

	req := testutil.MakeRequest("POST", "/sessions/"+created.Session.Code+"/end", nil,
		actorHeaders(created.Session.Host.ID, created.UserToken))
	req.SetPathValue("code", created.Session.Code)
	w := httptest.NewRecorder()
	sh.EndSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = submitQuestion(qh, created.Session.Code, actorHeaders(alice.User.ID, alice.UserToken),
		models.SubmitQuestionRequest{Body: "Too late?"})
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestListQuestions(t *testing.T) {
	db, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	alice := joinSession(t, sh, created.Session.Code, "Alice")

	first := testutil.CreateTestQuestion(t, db, created.Session.ID, alice.User.ID, "first")
	second := testutil.CreateTestQuestion(t, db, created.Session.ID, alice.User.ID, "second")
	if _, err := db.Exec(`UPDATE questions SET status = 'answered', answered_at = $1 WHERE id = $2`, created.Session.CreatedAt, first); err != nil {
		t.Fatalf("Failed to answer question: %v", err)
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedIDs    []int64
	}{
		{"all questions newest first", "", http.StatusOK, []int64{second, first}},
		{"pending only", "?status=pending", http.StatusOK, []int64{second}},
		{"answered only", "?status=answered", http.StatusOK, []int64{first}},
		{"bad status", "?status=archived", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sessions/"+created.Session.Code+"/questions"+tt.query, nil)
			req.SetPathValue("code", created.Session.Code)
			w := httptest.NewRecorder()

			qh.ListQuestions(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var questions []models.QuestionSummary
			testutil.AssertJSON(t, w, &questions)
			if len(questions) != len(tt.expectedIDs) {
				t.Fatalf("Expected %d questions, got %d", len(tt.expectedIDs), len(questions))
			}
			for i, id := range tt.expectedIDs {
				if questions[i].ID != id {
					t.Errorf("Position %d: expected question %d, got %d", i, id, questions[i].ID)
				}
			}
		})
	}
}

func TestListQuestionsLikedFlag(t *testing.T) {
	_, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	code := created.Session.Code
	alice := joinSession(t, sh, code, "Alice")
	bob := joinSession(t, sh, code, "Bob")
	bobHeaders := actorHeaders(bob.User.ID, bob.UserToken)

	w := submitQuestion(qh, code, actorHeaders(alice.User.ID, alice.UserToken), models.SubmitQuestionRequest{Body: "Why?"})
	testutil.AssertStatus(t, w, http.StatusCreated)
	var q models.QuestionSummary
	testutil.AssertJSON(t, w, &q)

	w = vote(qh, q.ID, bobHeaders)
	testutil.AssertStatus(t, w, http.StatusOK)

	list := func(headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/sessions/"+code+"/questions", nil, headers)
		req.SetPathValue("code", code)
		w := httptest.NewRecorder()
		qh.ListQuestions(w, req)
		return w
	}

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
		expectedLiked  bool
	}{
		{"anonymous viewer", nil, http.StatusOK, false},
		{"voter", bobHeaders, http.StatusOK, true},
		{"author without a vote", actorHeaders(alice.User.ID, alice.UserToken), http.StatusOK, false},
		{"bad token", actorHeaders(bob.User.ID, alice.UserToken), http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := list(tt.headers)
			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var questions []models.QuestionSummary
			testutil.AssertJSON(t, w, &questions)
			if len(questions) != 1 {
				t.Fatalf("Expected 1 question, got %d", len(questions))
			}
			if questions[0].Liked != tt.expectedLiked {
				t.Errorf("Expected liked=%v, got %v", tt.expectedLiked, questions[0].Liked)
			}
		})
	}
}

func TestAnswerQuestion(t *testing.T) {
	_, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	code := created.Session.Code
	alice := joinSession(t, sh, code, "Alice")
	aliceHeaders := actorHeaders(alice.User.ID, alice.UserToken)
	hostHeaders := actorHeaders(created.Session.Host.ID, created.UserToken)

	w := submitQuestion(qh, code, aliceHeaders, models.SubmitQuestionRequest{Body: "Why?"})
	testutil.AssertStatus(t, w, http.StatusCreated)
	var q models.QuestionSummary
	testutil.AssertJSON(t, w, &q)

	tests := []struct {
		name           string
		id             string
		headers        map[string]string
		expectedStatus int
	}{
		{"bad id", "abc", hostHeaders, http.StatusBadRequest},
		{"participant forbidden", strconv.FormatInt(q.ID, 10), aliceHeaders, http.StatusForbidden},
		{"unknown question", strconv.FormatInt(q.ID+100, 10), hostHeaders, http.StatusNotFound},
		{"host answers", strconv.FormatInt(q.ID, 10), hostHeaders, http.StatusOK},
		{"already answered", strconv.FormatInt(q.ID, 10), hostHeaders, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/"+code+"/questions/"+tt.id+"/answer", nil, tt.headers)
			req.SetPathValue("code", code)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			qh.AnswerQuestion(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var answered models.QuestionSummary
				testutil.AssertJSON(t, w, &answered)
				if answered.Status != models.QuestionAnswered {
					t.Errorf("Expected answered, got '%s'", answered.Status)
				}
				if answered.AnsweredAt == nil {
					t.Error("Expected answered_at to be set")
				}
			}
		})
	}
}

func TestVote(t *testing.T) {
	db, sh, qh := setupHandlers(t)

	created := createSession(t, sh, "Algebra", "Ms Lee")
	alice := joinSession(t, sh, created.Session.Code, "Alice")
	bob := joinSession(t, sh, created.Session.Code, "Bob")

	questionID := testutil.CreateTestQuestion(t, db, created.Session.ID, alice.User.ID, "Why?")

	tests := []struct {
		name           string
		questionID     int64
		headers        map[string]string
		expectedStatus int
		expectedLikes  int
		expectedAdded  bool
	}{
		{"bob likes", questionID, actorHeaders(bob.User.ID, bob.UserToken), http.StatusOK, 1, true},
		{"host likes", questionID, actorHeaders(created.Session.Host.ID, created.UserToken), http.StatusOK, 2, true},
		{"bob again is a no-op", questionID, actorHeaders(bob.User.ID, bob.UserToken), http.StatusOK, 2, false},
		{"unknown question", questionID + 100, actorHeaders(bob.User.ID, bob.UserToken), http.StatusNotFound, 0, false},
		{"no credentials", questionID, nil, http.StatusUnauthorized, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := vote(qh, tt.questionID, tt.headers)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result models.VoteResult
			testutil.AssertJSON(t, w, &result)
			if result.TotalLikes != tt.expectedLikes {
				t.Errorf("Expected %d likes, got %d", tt.expectedLikes, result.TotalLikes)
			}
			if result.Added != tt.expectedAdded {
				t.Errorf("Expected added=%v, got %v", tt.expectedAdded, result.Added)
			}
			if !result.Liked {
				t.Error("Expected liked=true")
			}
		})
	}

	if n := testutil.CountRows(t, db, "question_votes", "question_id = $1", questionID); n != 2 {
		t.Errorf("Expected 2 vote rows, got %d", n)
	}
}

func TestVoteBadID(t *testing.T) {
	_, _, qh := setupHandlers(t)

	req := httptest.NewRequest("POST", "/questions/x/votes", nil)
	req.SetPathValue("id", "x")
	w := httptest.NewRecorder()

	qh.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
