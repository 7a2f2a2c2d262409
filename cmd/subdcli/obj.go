package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/subd"
)

// readOBJ parses a Wavefront OBJ stream into a mesh descriptor. Only the
// topology-bearing statements are honored: v, vt, and f. When every face
// vertex carries a texture index the vt assignment becomes face-varying
// channel 0; a mesh that textures only some faces is rejected.
func readOBJ(r io.Reader) (subd.MeshDescriptor, error) {
	var (
		desc         subd.MeshDescriptor
		numTexCoords int
		uvIndices    []int
		facesWithUV  int
		lineNum      int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			desc.NumVertices++
		case "vt":
			numTexCoords++
		case "f":
			if len(fields) < 4 {
				return subd.MeshDescriptor{}, fmt.Errorf("line %d: face with fewer than 3 vertices", lineNum)
			}
			corners := fields[1:]
			hasUV := false
			for i, corner := range corners {
				vi, ti, err := parseFaceCorner(corner)
				if err != nil {
					return subd.MeshDescriptor{}, fmt.Errorf("line %d: %w", lineNum, err)
				}
				vi, err = resolveIndex(vi, desc.NumVertices, "vertex")
				if err != nil {
					return subd.MeshDescriptor{}, fmt.Errorf("line %d: %w", lineNum, err)
				}
				desc.FaceVertexIndices = append(desc.FaceVertexIndices, vi)

				if ti != 0 {
					if i == 0 {
						hasUV = true
					} else if !hasUV {
						return subd.MeshDescriptor{}, fmt.Errorf("line %d: mixed textured and untextured corners", lineNum)
					}
					ti, err = resolveIndex(ti, numTexCoords, "texture")
					if err != nil {
						return subd.MeshDescriptor{}, fmt.Errorf("line %d: %w", lineNum, err)
					}
					uvIndices = append(uvIndices, ti)
				} else if hasUV {
					return subd.MeshDescriptor{}, fmt.Errorf("line %d: mixed textured and untextured corners", lineNum)
				}
			}
			desc.FaceVertexCounts = append(desc.FaceVertexCounts, len(corners))
			if hasUV {
				facesWithUV++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return subd.MeshDescriptor{}, err
	}
	if len(desc.FaceVertexCounts) == 0 {
		return subd.MeshDescriptor{}, fmt.Errorf("no faces")
	}

	if facesWithUV > 0 {
		if facesWithUV != len(desc.FaceVertexCounts) {
			return subd.MeshDescriptor{}, fmt.Errorf("only %d of %d faces carry texture indices",
				facesWithUV, len(desc.FaceVertexCounts))
		}
		desc.FVarChannels = []subd.FVarChannel{{
			NumValues:    numTexCoords,
			ValueIndices: uvIndices,
		}}
	}
	return desc, nil
}

// parseFaceCorner splits one face corner of the forms "v", "v/vt",
// "v//vn", and "v/vt/vn". Indices stay 1-based (or negative); a zero
// texture index means the corner has none.
func parseFaceCorner(s string) (vertex, texture int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return 0, 0, fmt.Errorf("malformed face corner %q", s)
	}
	vertex, err = strconv.Atoi(parts[0])
	if err != nil || vertex == 0 {
		return 0, 0, fmt.Errorf("malformed face corner %q", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		texture, err = strconv.Atoi(parts[1])
		if err != nil || texture == 0 {
			return 0, 0, fmt.Errorf("malformed face corner %q", s)
		}
	}
	return vertex, texture, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based
// one against the count of elements declared so far.
func resolveIndex(idx, count int, kind string) (int, error) {
	if idx > 0 {
		idx--
	} else {
		idx += count
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%s index out of range", kind)
	}
	return idx, nil
}
