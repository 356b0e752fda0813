// Copyright 2026 Lorekeep Systems
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


// Package openai implements the ai service interfaces using
// OpenAI-compatible APIs via langchaingo.
//
// It works with any OpenAI-compatible endpoint: OpenAI itself, Ollama,
// LocalAI, vLLM, and similar local servers. Chat-backed services
// (classifier, analyzer, summarizer) request JSON mode, strip markdown
// code fences, repair common key-quoting mistakes, and retry parsing up
// to three times before reporting failure.
package openai
