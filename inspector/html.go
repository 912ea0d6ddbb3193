// Copyright (C) 2026 a11ybridged contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License version 3 as
// published by the Free Software Foundation.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package inspector

// indexHTML is the self-contained diagnostic page: a tree view plus a
// details pane, driven entirely by the JSON API. No build step, no
// external assets.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>a11ybridged inspector</title>
<style>
body { font-family: sans-serif; display: flex; margin: 0; }
#tree { width: 40%; padding: 1em; overflow: auto; height: 100vh; box-sizing: border-box; }
#details { width: 60%; padding: 1em; }
.node { cursor: pointer; padding: 2px 0; }
.node.focused { font-weight: bold; color: #2a6; }
ul { list-style: none; padding-left: 1.2em; }
</style>
</head>
<body>
<div id="tree"></div>
<div id="details"><p>Select a node.</p></div>
<script>
let focusedId = null;

function renderNode(node) {
  const li = document.createElement('li');
  const span = document.createElement('span');
  span.className = 'node' + (node.id === focusedId ? ' focused' : '');
  span.textContent = node.name + ' (' + node.role + ')';
  span.onclick = () => selectElement(node.id);
  li.appendChild(span);
  if (node.children && node.children.length) {
    const ul = document.createElement('ul');
    node.children.forEach(c => ul.appendChild(renderNode(c)));
    li.appendChild(ul);
  }
  return li;
}

function loadTree() {
  fetch('/api/tree').then(r => r.json()).then(data => {
    focusedId = data.focusedId;
    const root = document.getElementById('tree');
    root.innerHTML = '';
    const ul = document.createElement('ul');
    ul.appendChild(renderNode(data.tree));
    root.appendChild(ul);
  });
}

function renderDetails(el) {
  const d = document.getElementById('details');
  d.innerHTML = '<h2>' + el.name + '</h2>' +
    '<p>role: ' + el.role + '</p>' +
    '<p>description: ' + el.description + '</p>' +
    '<p>states: ' + el.states + '</p>' +
    '<p>bounds: ' + el.boundsX + ',' + el.boundsY + ' ' + el.boundsWidth + 'x' + el.boundsHeight + '</p>' +
    '<p>children: ' + el.childCount + '</p>' +
    '<p>parent: ' + el.parentId + '</p>';
}

function selectElement(id) {
  fetch('/api/element/' + id).then(r => r.json()).then(renderDetails);
}

function navigate(direction) {
  fetch('/api/navigate', {
    method: 'POST',
    body: JSON.stringify({direction: direction}),
  }).then(r => r.json()).then(data => {
    focusedId = data.focusedId;
    renderDetails(data.element);
    loadTree();
  });
}

loadTree();
</script>
</body>
</html>
`
