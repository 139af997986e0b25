// SPDX-License-Identifier: MIT

package generator

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// SupportedFeatures are the features announced in every response.
const SupportedFeatures = uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)

// ToResponse builds the plugin response. A file's preamble is placed in
// front of its content, separated by a blank line.
func ToResponse(files []FileInfo) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(SupportedFeatures),
	}
	for _, f := range files {
		content := f.Content
		if f.Preamble != "" {
			content = f.Preamble + "\n" + content
		}
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(f.Name),
			Content: proto.String(content),
		})
	}
	return resp
}

// ErrorResponse reports a failed run to protoc.
func ErrorResponse(err error) *pluginpb.CodeGeneratorResponse {
	return &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(SupportedFeatures),
		Error:             proto.String(err.Error()),
	}
}
