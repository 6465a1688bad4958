package course_test

import (
	"testing"

	"coursebook/internal/domain/course"
)

// TestCourseValidation tests validation of Course.
func TestCourseValidation(t *testing.T) {
	tests := []struct {
		name    string
		course  course.Course
		wantErr bool
	}{
		{
			name: "valid course",
			course: course.Course{
				ID:          "c1",
				Name:        "Moving Castle Creations – 3D Animation",
				Description: "Learn **3D animation** the Ghibli way.",
				Active:      true,
			},
			wantErr: false,
		},
		{
			name:    "empty name",
			course:  course.Course{ID: "c1"},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			course:  course.Course{ID: "c1", Name: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.course.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestModuleValidation tests validation of Module.
func TestModuleValidation(t *testing.T) {
	tests := []struct {
		name    string
		module  course.Module
		wantErr bool
	}{
		{
			name: "valid module",
			module: course.Module{
				ID:       "m1",
				CourseID: "c1",
				Name:     "Introduction to 3D Animation",
				Order:    1,
				Active:   true,
			},
			wantErr: false,
		},
		{
			name:    "missing course",
			module:  course.Module{ID: "m1", Name: "Introduction to 3D Animation"},
			wantErr: true,
		},
		{
			name:    "empty name",
			module:  course.Module{ID: "m1", CourseID: "c1"},
			wantErr: true,
		},
		{
			name:    "negative order",
			module:  course.Module{ID: "m1", CourseID: "c1", Name: "Intro", Order: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.module.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
