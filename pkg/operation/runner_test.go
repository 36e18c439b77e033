// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type operationFunc func(ctx context.Context) error

func (f operationFunc) Execute(ctx context.Context) error { return f(ctx) }

func TestRunner(t *testing.T) {
	errBoom := errors.Base("boom")

	tests := []struct {
		name    string
		async   bool
		op      operationFunc
		cancel  bool
		wantErr error
	}{
		{
			name: "sync_success",
			op:   func(ctx context.Context) error { return nil },
		},
		{
			name:    "sync_error",
			op:      func(ctx context.Context) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name:  "async_success",
			async: true,
			op:    func(ctx context.Context) error { return nil },
		},
		{
			name:    "async_error",
			async:   true,
			op:      func(ctx context.Context) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name:   "async_cancelled",
			async:  true,
			cancel: true,
			op: func(ctx context.Context) error {
				time.Sleep(time.Second)
				return nil
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}

			err := NewRunner(&logger, tt.async).Run(ctx, tt.op)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunnerNilLogger(t *testing.T) {
	runner := NewRunner(nil, false)
	called := false
	err := runner.Run(context.Background(), operationFunc(func(ctx context.Context) error {
		called = true
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, called)
}
