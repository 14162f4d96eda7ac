package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/academia/core/course"
	testutil "github.com/trezcool/academia/tests"
)

func Test_courseApi_create(t *testing.T) {
	resetDB()
	testutil.CreateCourse(t, courseRepo, "BSc Computer Science", "bcs", 6)

	tests := []httpTest{
		{
			name: "missing fields", body: marchallObj(t, course.NewCourse{Name: "BCom Accounting"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "this field is required", "semesters": "this field is required"}),
		},
		{
			name: "bad code", body: marchallObj(t, course.NewCourse{Name: "BCom Accounting", Code: "b.com!", Semesters: 6}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "only alphanumeric characters and underscores are allowed"}),
		},
		{
			name: "duplicate code", body: marchallObj(t, course.NewCourse{Name: "Other", Code: "BCS", Semesters: 4}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "a course with this code already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/courses", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(
			http.MethodPost, "/v1/courses",
			marchallObj(t, course.NewCourse{Name: "BCom Accounting", Code: "BCA", Semesters: 6}),
		)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var crs course.Course
		if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if crs.Code != "bca" { // codes are lower-cased
			t.Errorf("Code = %q; want %q", crs.Code, "bca")
		}
	})
}

func Test_courseApi_retrieveAndDelete(t *testing.T) {
	resetDB()
	crs := testutil.CreateCourse(t, courseRepo, "BSc Computer Science", "bcs", 6)

	tests := []httpTest{
		{name: "ok", method: http.MethodGet, path: "/v1/courses/" + crs.ID.String(), wantCode: http.StatusOK, wantData: marchallObj(t, crs)},
		{
			name: "bad id", method: http.MethodGet, path: "/v1/courses/lol",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid id"}),
		},
		{
			name: "unknown id", method: http.MethodGet, path: "/v1/courses/" + uuid.New().String(),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("delete", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/courses/"+crs.ID.String())
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}

		req, rec = newRequest(http.MethodGet, "/v1/courses")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}, rec)
	})
}
