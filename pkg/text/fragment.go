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

package text

// Fragment is a span of text at a byte offset of the string it belongs to
type Fragment struct {
	Offset int
	Text   string
}

// End returns the offset just past the fragment
func (f Fragment) End() int {
	return f.Offset + len(f.Text)
}

// FragmentPair is a matched input span and the output span that replaces it
type FragmentPair struct {
	Input  Fragment
	Output Fragment
}

// Fragments is the ordered list of changes found by a scan. Input fragments
// have strictly increasing offsets and never overlap.
type Fragments struct {
	pairs []FragmentPair
}

// Len returns the number of changes
func (f *Fragments) Len() int {
	return len(f.pairs)
}

// IsEmpty reports whether no change was found
func (f *Fragments) IsEmpty() bool {
	return len(f.pairs) == 0
}

// At returns the i-th change
func (f *Fragments) At(i int) FragmentPair {
	return f.pairs[i]
}

// Pairs returns a copy of all changes
func (f *Fragments) Pairs() []FragmentPair {
	out := make([]FragmentPair, len(f.pairs))
	copy(out, f.pairs)
	return out
}

// Inputs returns the input side of every change
func (f *Fragments) Inputs() []Fragment {
	out := make([]Fragment, len(f.pairs))
	for i, p := range f.pairs {
		out[i] = p.Input
	}
	return out
}

// Outputs returns the output side of every change
func (f *Fragments) Outputs() []Fragment {
	out := make([]Fragment, len(f.pairs))
	for i, p := range f.pairs {
		out[i] = p.Output
	}
	return out
}

func (f *Fragments) add(input, output Fragment) {
	f.pairs = append(f.pairs, FragmentPair{Input: input, Output: output})
}
